package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/pkg/response"
	"github.com/brandbite/brandbite-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListJobTypes handles GET /api/admin/job-types
func (h *Handler) ListJobTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	list, err := h.svc.ListJobTypes(r.Context(), activeOnly)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, list)
}

// CreateJobType handles POST /api/admin/job-types
func (h *Handler) CreateJobType(w http.ResponseWriter, r *http.Request) {
	var req JobTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	jt := &JobType{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		IsActive:       true,
	}
	if req.IsActive != nil {
		jt.IsActive = *req.IsActive
	}

	if err := h.svc.CreateJobType(r.Context(), jt); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.BadRequest(w, "Unknown category")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, jt)
}

// UpdateJobType handles PATCH /api/admin/job-types/{id}
func (h *Handler) UpdateJobType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid job type id")
		return
	}

	existing, err := h.svc.GetJobType(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrJobTypeNotFound) {
			response.NotFound(w, "Job type not found")
			return
		}
		response.InternalError(w)
		return
	}

	var req JobTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	existing.CategoryID = req.CategoryID
	existing.Name = req.Name
	existing.Description = req.Description
	existing.EstimatedHours = req.EstimatedHours
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.svc.UpdateJobType(r.Context(), existing); err != nil {
		switch {
		case errors.Is(err, ErrJobTypeNotFound):
			response.NotFound(w, "Job type not found")
		case errors.Is(err, ErrCategoryNotFound):
			response.BadRequest(w, "Unknown category")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, existing)
}

// ListCategories handles GET /api/admin/job-type-categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCategories(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, list)
}

// CreateCategory handles POST /api/admin/job-type-categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, c)
}

// UpdateCategory handles PATCH /api/admin/job-type-categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category id")
		return
	}

	existing, err := h.svc.repo.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		response.InternalError(w)
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	existing.Name = req.Name
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.svc.UpdateCategory(r.Context(), existing); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, existing)
}

// MigrateCategory handles POST /api/admin/job-type-categories/{id}/migrate
func (h *Handler) MigrateCategory(w http.ResponseWriter, r *http.Request) {
	sourceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category id")
		return
	}

	var req MigrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	moved, err := h.svc.MigrateCategory(r.Context(), sourceID, req.TargetCategoryID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			response.NotFound(w, "Category not found")
		case errors.Is(err, ErrSameCategory):
			response.BadRequest(w, "Source and target categories must differ")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]int{"moved_job_types": moved})
}

// CustomerRoutes mounts the read-only catalog endpoints used by the
// ticket creation form
func (h *Handler) CustomerRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/job-types", func(w http.ResponseWriter, req *http.Request) {
		jobTypes, err := h.svc.ListJobTypes(req.Context(), true)
		if err != nil {
			response.InternalError(w)
			return
		}
		response.OK(w, jobTypes)
	})
	return r
}

// AdminJobTypeRoutes mounts job type CRUD
func (h *Handler) AdminJobTypeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListJobTypes)
	r.Post("/", h.CreateJobType)
	r.Patch("/{id}", h.UpdateJobType)
	return r
}

// AdminCategoryRoutes mounts category CRUD plus migrate
func (h *Handler) AdminCategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListCategories)
	r.Post("/", h.CreateCategory)
	r.Patch("/{id}", h.UpdateCategory)
	r.Post("/{id}/migrate", h.MigrateCategory)
	return r
}
