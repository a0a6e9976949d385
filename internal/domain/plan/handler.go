package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/pkg/response"
	"github.com/brandbite/brandbite-api/internal/pkg/validator"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// PlanRequest creates or updates a plan
type PlanRequest struct {
	Name              string `json:"name" validate:"required,min=2,max=100"`
	Description       string `json:"description,omitempty" validate:"max=1000"`
	PriceMonthly      int64  `json:"price_monthly" validate:"gte=0"`
	MonthlyTokenGrant int64  `json:"monthly_token_grant" validate:"gte=0"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

// List handles GET /api/admin/plans
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, plans)
}

// Create handles POST /api/admin/plans
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now().UTC()
	p := &Plan{
		ID:                uuid.New(),
		Name:              req.Name,
		Description:       req.Description,
		PriceMonthly:      req.PriceMonthly,
		MonthlyTokenGrant: req.MonthlyTokenGrant,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, p)
}

// Update handles PATCH /api/admin/plans/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid plan id")
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Plan not found")
			return
		}
		response.InternalError(w)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.PriceMonthly = req.PriceMonthly
	existing.MonthlyTokenGrant = req.MonthlyTokenGrant
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.repo.Update(r.Context(), existing); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, existing)
}

// AdminRoutes mounts plan CRUD
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/{id}", h.Update)
	return r
}
