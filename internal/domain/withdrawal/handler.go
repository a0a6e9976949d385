package withdrawal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/domain/ledger"
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

// CreativeList handles GET /api/creative/withdrawals
func (h *Handler) CreativeList(w http.ResponseWriter, r *http.Request) {
	creativeID := middleware.GetUserID(r.Context())
	if creativeID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	list, err := h.svc.ListForCreative(r.Context(), creativeID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, list)
}

// CreativeRequest handles POST /api/creative/withdrawals
func (h *Handler) CreativeRequest(w http.ResponseWriter, r *http.Request) {
	creativeID := middleware.GetUserID(r.Context())
	if creativeID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req RequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	wd, err := h.svc.Request(r.Context(), creativeID, req.AmountTokens)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "Amount must be greater than zero")
		case errors.Is(err, ErrInsufficientAvailable):
			response.Conflict(w, "Insufficient available balance")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, wd)
}

// AdminList handles GET /api/admin/withdrawals
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	var status *Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := Status(raw)
		status = &s
	}

	list, total, err := h.svc.ListAll(r.Context(), status, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, list, response.Meta{Total: total, Limit: limit, Offset: offset})
}

// AdminAction handles PATCH /api/admin/withdrawals/{id} with an action
// payload: APPROVE, REJECT, or MARK_PAID.
func (h *Handler) AdminAction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid withdrawal id")
		return
	}

	var req ActionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var wd *Withdrawal
	switch req.Action {
	case "APPROVE":
		wd, err = h.svc.Approve(r.Context(), id)
	case "REJECT":
		wd, err = h.svc.Reject(r.Context(), id, req.Reason)
	case "MARK_PAID":
		wd, err = h.svc.MarkPaid(r.Context(), id)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Withdrawal not found")
		case errors.Is(err, ErrInvalidTransition):
			response.Conflict(w, "Withdrawal cannot transition from its current status")
		case errors.Is(err, ErrReasonRequired):
			response.BadRequest(w, "Reject reason is required")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			response.Error(w, http.StatusConflict, "INSUFFICIENT_TOKENS", "Creative balance no longer covers this payout")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, wd)
}

// CreativeRoutes mounts the creative-facing withdrawal endpoints
func (h *Handler) CreativeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.CreativeList)
	r.Post("/", h.CreativeRequest)
	return r
}

// AdminRoutes mounts the admin withdrawal endpoints
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Patch("/{id}", h.AdminAction)
	return r
}
