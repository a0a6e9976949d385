package ticket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brandbite/brandbite-api/internal/domain/catalog"
	"github.com/brandbite/brandbite-api/internal/domain/ledger"
	"github.com/brandbite/brandbite-api/internal/domain/user"
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

// CustomerBoard handles GET /api/customer/board
func (h *Handler) CustomerBoard(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	board, err := h.svc.CompanyBoard(r.Context(), companyID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, board)
}

// CustomerList handles GET /api/customer/tickets
func (h *Handler) CustomerList(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())
	tickets, err := h.svc.ListByCompany(r.Context(), companyID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, tickets)
}

// CustomerCreate handles POST /api/customer/tickets
func (h *Handler) CustomerCreate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil || sess.CompanyID == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	t, err := h.svc.Create(r.Context(), CreateInput{
		CompanyID:   *sess.CompanyID,
		CreatedBy:   sess.UserID,
		JobTypeID:   req.JobTypeID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    Priority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrJobTypeNotFound):
			response.NotFound(w, "Job type not found")
		case errors.Is(err, catalog.ErrJobTypeInactive):
			response.BadRequest(w, "Job type is not active")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			response.Error(w, http.StatusUnprocessableEntity, "INSUFFICIENT_TOKENS", "Company token balance is too low for this job type")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, t)
}

// CustomerGet handles GET /api/customer/tickets/{id}
func (h *Handler) CustomerGet(w http.ResponseWriter, r *http.Request) {
	t, ok := h.companyTicket(w, r)
	if !ok {
		return
	}
	response.OK(w, t)
}

// CustomerMove handles PATCH /api/customer/tickets/{id} — approve or
// request changes on a ticket in review
func (h *Handler) CustomerMove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	t, ok := h.companyTicket(w, r)
	if !ok {
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	moved, err := h.svc.Move(r.Context(), MoveInput{
		TicketID: t.ID,
		ActorID:  sess.UserID,
		Role:     user.Role(sess.Role),
		To:       Status(req.Status),
		Feedback: req.Feedback,
	})
	if err != nil {
		h.writeMoveError(w, err)
		return
	}
	response.OK(w, moved)
}

// CustomerComments handles GET /api/customer/tickets/{id}/comments
func (h *Handler) CustomerComments(w http.ResponseWriter, r *http.Request) {
	t, ok := h.companyTicket(w, r)
	if !ok {
		return
	}
	comments, err := h.svc.ListComments(r.Context(), t.ID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, comments)
}

// CustomerAddComment handles POST /api/customer/tickets/{id}/comments
func (h *Handler) CustomerAddComment(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	t, ok := h.companyTicket(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.svc.AddComment(r.Context(), t.ID, sess.UserID, req.Body)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, c)
}

// CreativeList handles GET /api/creative/tickets
func (h *Handler) CreativeList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	tickets, err := h.svc.ListByDesigner(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, tickets)
}

// CreativeMove handles PATCH /api/creative/tickets/{id}
func (h *Handler) CreativeMove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ticket id")
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	moved, err := h.svc.Move(r.Context(), MoveInput{
		TicketID: id,
		ActorID:  sess.UserID,
		Role:     user.Role(sess.Role),
		To:       Status(req.Status),
	})
	if err != nil {
		h.writeMoveError(w, err)
		return
	}
	response.OK(w, moved)
}

// CreativeRevisions handles GET /api/creative/tickets/{id}/revisions
func (h *Handler) CreativeRevisions(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ticket id")
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Ticket not found")
			return
		}
		response.InternalError(w)
		return
	}
	if t.DesignerID == nil || *t.DesignerID != sess.UserID {
		response.Forbidden(w, "Ticket is not assigned to you")
		return
	}

	revisions, err := h.svc.ListRevisions(r.Context(), id)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, revisions)
}

// AdminList handles GET /api/admin/tickets
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	status := r.URL.Query().Get("status")

	tickets, total, err := h.svc.ListAll(r.Context(), status, limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.WithMeta(w, tickets, response.Meta{Total: total, Limit: limit, Offset: offset})
}

// AdminGet handles GET /api/admin/tickets/{id}
func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ticket id")
		return
	}
	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Ticket not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, t)
}

// AdminUpdate handles PATCH /api/admin/tickets/{id} — status override,
// assignment and field edits in one endpoint
func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ticket id")
		return
	}

	var req AdminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	in := AdminUpdateInput{
		TicketID:   id,
		ActorID:    sess.UserID,
		Role:       user.Role(sess.Role),
		Title:      req.Title,
		DesignerID: req.DesignerID,
		Unassign:   req.Unassign,
	}
	if req.Priority != nil {
		p := Priority(*req.Priority)
		in.Priority = &p
	}
	if req.Status != nil {
		st := Status(*req.Status)
		in.Status = &st
	}

	t, err := h.svc.AdminUpdate(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Ticket not found")
			return
		}
		h.writeMoveError(w, err)
		return
	}

	response.OK(w, t)
}

// companyTicket loads the path ticket and verifies it belongs to the
// caller's company
func (h *Handler) companyTicket(w http.ResponseWriter, r *http.Request) (*Ticket, bool) {
	companyID := middleware.GetCompanyID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid ticket id")
		return nil, false
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Ticket not found")
			return nil, false
		}
		response.InternalError(w)
		return nil, false
	}
	if t.CompanyID != companyID {
		response.NotFound(w, "Ticket not found")
		return nil, false
	}
	return t, true
}

func (h *Handler) writeMoveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "Ticket not found")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(w, http.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
	case errors.Is(err, ErrNotAssigned):
		response.Forbidden(w, "Ticket is not assigned to you")
	case errors.Is(err, ErrFeedbackRequired):
		response.BadRequest(w, "Feedback is required when requesting changes")
	default:
		response.InternalError(w)
	}
}

// CreativeRoutes mounts the creative ticket endpoints
func (h *Handler) CreativeRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.CreativeList)
	r.Patch("/{id}", h.CreativeMove)
	r.Get("/{id}/revisions", h.CreativeRevisions)
	return r
}

// AdminRoutes mounts the admin ticket endpoints
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Get("/{id}", h.AdminGet)
	r.Patch("/{id}", h.AdminUpdate)
	return r
}
