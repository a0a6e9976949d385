package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brandbite/brandbite-api/internal/middleware"
	"github.com/brandbite/brandbite-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// AvailabilityRequest pauses or resumes a creative
type AvailabilityRequest struct {
	Paused bool       `json:"paused"`
	Until  *time.Time `json:"until,omitempty"`
}

// Availability handles GET /api/creative/availability
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	u, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]interface{}{
		"paused": u.IsPaused(),
		"until":  nullableTime(u.PauseExpiresAt.Time, u.PauseExpiresAt.Valid),
	})
}

// SetAvailability handles PATCH /api/creative/availability
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	var (
		u   *User
		err error
	)
	if req.Paused {
		u, err = h.svc.Pause(r.Context(), userID, req.Until)
	} else {
		u, err = h.svc.Resume(r.Context(), userID)
	}
	if err != nil {
		if errors.Is(err, ErrNotACreative) {
			response.Forbidden(w, "Only creatives can change availability")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]interface{}{
		"paused": u.IsPaused(),
		"until":  nullableTime(u.PauseExpiresAt.Time, u.PauseExpiresAt.Valid),
	})
}

func nullableTime(t time.Time, valid bool) *time.Time {
	if !valid {
		return nil
	}
	return &t
}
