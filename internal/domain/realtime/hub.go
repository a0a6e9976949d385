package realtime

import (
	"context"
	"encoding/json"
	"expvar"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/brandbite/brandbite-api/internal/domain/ticket"
)

// Redis channel prefix. One channel per company bridges board events
// across API instances.
const boardChannelPrefix = "board:company:"

var (
	wsConnectionsGauge   = expvar.NewInt("board_ws_connections")
	wsEventsSentTotal    = expvar.NewInt("board_ws_events_sent_total")
	wsEventsDroppedTotal = expvar.NewInt("board_ws_events_dropped_total")
)

// Connection is one WebSocket subscriber to a company's board stream.
type Connection struct {
	CompanyID uuid.UUID
	Conn      *websocket.Conn
	Send      chan []byte
}

// Hub fans board events out to connected clients, bridging instances
// through Redis pub/sub. Without Redis it degrades to single-instance
// local fanout.
type Hub struct {
	connections map[uuid.UUID]map[*Connection]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[uuid.UUID]map[*Connection]bool),
		redis:       redisClient,
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
	}

	if redisClient != nil {
		h.pubsub = redisClient.PSubscribe(ctx, boardChannelPrefix+"*")
	}
	return h
}

// Run starts the hub loop; call in a goroutine.
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.CompanyID] == nil {
				h.connections[conn.CompanyID] = make(map[*Connection]bool)
			}
			h.connections[conn.CompanyID][conn] = true
			h.mu.Unlock()
			wsConnectionsGauge.Add(1)
			log.Debug().Str("company_id", conn.CompanyID.String()).Msg("board subscriber connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.CompanyID]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
					wsConnectionsGauge.Add(-1)
				}
				if len(conns) == 0 {
					delete(h.connections, conn.CompanyID)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("company_id", conn.CompanyID.String()).Msg("board subscriber disconnected")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(msg.Channel) <= len(boardChannelPrefix) {
				continue
			}
			companyID, err := uuid.Parse(msg.Channel[len(boardChannelPrefix):])
			if err != nil {
				continue
			}
			h.broadcastLocal(companyID, []byte(msg.Payload))
		}
	}
}

// PublishBoard implements the board event sink consumed by the ticket
// service. With Redis the event travels through pub/sub so every
// instance delivers it; otherwise it goes straight to local clients.
func (h *Hub) PublishBoard(ctx context.Context, event ticket.BoardEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("marshal board event")
		return
	}

	if h.redis != nil {
		if err := h.redis.Publish(ctx, boardChannelPrefix+event.CompanyID.String(), data).Err(); err != nil {
			log.Error().Err(err).Msg("publish board event")
			// fall through to local delivery so this instance still sees it
			h.broadcastLocal(event.CompanyID, data)
		}
		return
	}

	h.broadcastLocal(event.CompanyID, data)
}

func (h *Hub) broadcastLocal(companyID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections[companyID] {
		select {
		case conn.Send <- data:
			wsEventsSentTotal.Add(1)
		default:
			wsEventsDroppedTotal.Add(1)
			log.Warn().Str("company_id", companyID.String()).Msg("board subscriber send buffer full")
		}
	}
}

func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Shutdown stops the hub loop and closes the Redis subscription.
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// WritePump drains the connection's send channel to the socket. The
// stream is read-only for clients; ReadPump just consumes control
// frames until the peer goes away.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
