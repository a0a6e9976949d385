package payout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/middleware"
	"github.com/brandbite/brandbite-api/internal/pkg/response"
	"github.com/brandbite/brandbite-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CreativeStatus handles GET /api/creative/payout-tier
func (h *Handler) CreativeStatus(w http.ResponseWriter, r *http.Request) {
	creativeID := middleware.GetUserID(r.Context())
	if creativeID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	status, err := h.svc.CurrentStatus(r.Context(), creativeID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, status)
}

// AdminList handles GET /api/admin/payout-tiers
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.svc.ListTiers(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, tiers)
}

// AdminCreate handles POST /api/admin/payout-tiers
func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req TierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tier := &Tier{
		Name:                req.Name,
		MinCompletedTickets: req.MinCompletedTickets,
		TimeWindowDays:      req.TimeWindowDays,
		PayoutPercent:       req.PayoutPercent,
	}
	if err := h.svc.CreateTier(r.Context(), tier); err != nil {
		if errors.Is(err, ErrInvalidPercent) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, tier)
}

// AdminUpdate handles PATCH /api/admin/payout-tiers/{id}
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid tier id")
		return
	}

	var req TierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	tier := &Tier{
		ID:                  id,
		Name:                req.Name,
		MinCompletedTickets: req.MinCompletedTickets,
		TimeWindowDays:      req.TimeWindowDays,
		PayoutPercent:       req.PayoutPercent,
	}
	if err := h.svc.UpdateTier(r.Context(), tier); err != nil {
		switch {
		case errors.Is(err, ErrTierNotFound):
			response.NotFound(w, "Payout tier not found")
		case errors.Is(err, ErrInvalidPercent):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, tier)
}

// AdminDelete handles DELETE /api/admin/payout-tiers/{id}
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid tier id")
		return
	}

	if err := h.svc.DeleteTier(r.Context(), id); err != nil {
		if errors.Is(err, ErrTierNotFound) {
			response.NotFound(w, "Payout tier not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// AdminRoutes mounts admin payout-tier CRUD
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Post("/", h.AdminCreate)
	r.Patch("/{id}", h.AdminUpdate)
	r.Delete("/{id}", h.AdminDelete)
	return r
}
