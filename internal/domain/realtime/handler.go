package realtime

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/domain/user"
	"github.com/brandbite/brandbite-api/internal/middleware"
	"github.com/brandbite/brandbite-api/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens in the CORS layer; the socket itself
	// requires an authenticated session.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Board handles GET /ws/board — upgrades to a WebSocket and streams
// the caller's company board events. Admins may watch any company via
// ?company_id=.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var companyID uuid.UUID
	switch {
	case user.Role(sess.Role).IsAdmin():
		id, err := uuid.Parse(r.URL.Query().Get("company_id"))
		if err != nil {
			response.BadRequest(w, "company_id query parameter required")
			return
		}
		companyID = id
	case sess.CompanyID != nil:
		companyID = *sess.CompanyID
	default:
		response.Forbidden(w, "No company scope")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &Connection{
		CompanyID: companyID,
		Conn:      conn,
		Send:      make(chan []byte, 64),
	}
	h.hub.Register(c)

	go c.WritePump()
	go c.ReadPump(h.hub)
}
