package asset

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/domain/ticket"
	"github.com/brandbite/brandbite-api/internal/domain/user"
	"github.com/brandbite/brandbite-api/internal/middleware"
	"github.com/brandbite/brandbite-api/internal/pkg/response"
	"github.com/brandbite/brandbite-api/internal/pkg/storage"
	"github.com/brandbite/brandbite-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Presign handles POST /api/uploads/r2/presign
func (h *Handler) Presign(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil || sess.CompanyID == nil {
		response.Forbidden(w, "No company scope")
		return
	}

	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.svc.Presign(r.Context(), *sess.CompanyID, req.FileName, req.ContentType, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Error(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the maximum allowed size")
		case errors.Is(err, storage.ErrContentTypeBlocked):
			response.BadRequest(w, "Content type not allowed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Register handles POST /api/assets/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.svc.Register(r.Context(), RegisterInput{
		TicketID:   req.TicketID,
		UploadedBy: sess.UserID,
		ObjectKey:  req.ObjectKey,
		FileName:   req.FileName,
	})
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrNotFound):
			response.NotFound(w, "Ticket not found")
		case errors.Is(err, ErrKeyNotIssued):
			response.BadRequest(w, "Object key does not belong to this ticket's company")
		case errors.Is(err, ErrObjectMissing):
			response.BadRequest(w, "Object has not been uploaded yet")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, a)
}

// Download handles GET /api/assets/{id}/download
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid asset id")
		return
	}

	result, err := h.svc.Download(r.Context(), id, sess.UserID, user.Role(sess.Role), sess.CompanyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Asset not found")
		case errors.Is(err, ErrAccessDenied):
			response.Forbidden(w, "No access to this asset")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// TicketAssets handles GET /api/customer/tickets/{id}/assets
func (h *Handler) TicketAssets(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ticket id")
		return
	}

	assets, err := h.svc.ListForTicket(r.Context(), id, companyID)
	if err != nil {
		if errors.Is(err, ticket.ErrNotFound) {
			response.NotFound(w, "Ticket not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, assets)
}
