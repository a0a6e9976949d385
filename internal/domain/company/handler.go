package company

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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

// SettingsRequest updates a company's settings
type SettingsRequest struct {
	Name   string     `json:"name" validate:"required,min=2,max=255"`
	PlanID *uuid.UUID `json:"plan_id,omitempty"`
}

// GrantRequest credits a company with tokens
type GrantRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

// Settings handles GET /api/customer/settings
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == uuid.Nil {
		response.Forbidden(w, "No company scope")
		return
	}

	c, err := h.svc.Get(r.Context(), companyID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, c)
}

// UpdateSettings handles PATCH /api/customer/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == uuid.Nil {
		response.Forbidden(w, "No company scope")
		return
	}

	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.svc.Get(r.Context(), companyID)
	if err != nil {
		response.InternalError(w)
		return
	}

	c.Name = req.Name
	c.PlanID = req.PlanID
	if err := h.svc.Update(r.Context(), c); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, c)
}

// Tokens handles GET /api/customer/tokens
func (h *Handler) Tokens(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == uuid.Nil {
		response.Forbidden(w, "No company scope")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	balance, history, err := h.svc.Tokens(r.Context(), companyID, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{
		"balance": balance,
		"history": history,
	})
}

// Members handles GET /api/customer/members
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	if companyID == uuid.Nil {
		response.Forbidden(w, "No company scope")
		return
	}

	members, err := h.svc.ListMembers(r.Context(), companyID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, members)
}

// AdminGrant handles POST /api/admin/companies/{id}/tokens
func (h *Handler) AdminGrant(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid company id")
		return
	}

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	entry, err := h.svc.GrantTokens(r.Context(), companyID, req.Amount, req.Reason)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Company not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, entry)
}
