package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Message is the frame written to websocket subscribers.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// MatchSource supplies the state sent to a subscriber when it connects.
type MatchSource interface {
	GetMatch(ctx context.Context, matchID uint) (*match.MatchView, error)
}

type client struct {
	id   string
	room string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans live score updates out to websocket subscribers, one room per match.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[string]*client // room -> client id -> client
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHub creates a hub. allowedOrigin "*" or "" accepts any origin.
func NewHub(logger *slog.Logger, allowedOrigin string) *Hub {
	return &Hub{
		rooms:  make(map[string]map[string]*client),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" || allowedOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// RoomFor names the room of a match.
func RoomFor(matchID uint) string {
	return fmt.Sprintf("match:%d", matchID)
}

func (h *Hub) join(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[c.room] == nil {
		h.rooms[c.room] = make(map[string]*client)
	}
	h.rooms[c.room][c.id] = c
	h.logger.Debug("ws subscriber joined", "room", c.room, "conn_id", c.id, "room_size", len(h.rooms[c.room]))
}

// leave removes the client and closes its send channel. It is safe to call twice.
func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := conns[c.id]; !ok {
		return
	}
	delete(conns, c.id)
	close(c.send)
	if len(conns) == 0 {
		delete(h.rooms, c.room)
	}
}

// RoomSize returns the number of subscribers in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Publish sends an event to every subscriber of room and returns how many received it.
// Subscribers whose buffer is full are disconnected.
func (h *Hub) Publish(room, event string, data interface{}) int {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		h.logger.Error("ws marshal error", "error", err, "room", room, "event", event)
		return 0
	}

	var slow []*client
	delivered := 0

	h.mu.RLock()
	for _, c := range h.rooms[room] {
		select {
		case c.send <- payload:
			delivered++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("ws send buffer full, dropping subscriber", "room", room, "conn_id", c.id)
		h.leave(c)
	}
	return delivered
}

// Notify implements match.Notifier.
func (h *Hub) Notify(_ context.Context, n match.Notification) error {
	h.Publish(RoomFor(n.MatchID), n.Event, n)
	return nil
}

// ServeMatch upgrades the request and subscribes the connection to the match in the :id path parameter.
// The subscriber joins its room before the current match view is read, so no update published
// between the snapshot and the join is lost.
func (h *Hub) ServeMatch(source MatchSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid match ID"})
			return
		}
		if _, err := source.GetMatch(c.Request.Context(), uint(id)); err != nil {
			status := http.StatusInternalServerError
			if match.KindOf(err) == match.KindNotFound {
				status = http.StatusNotFound
			}
			c.AbortWithStatusJSON(status, gin.H{"status": "error", "message": err.Error()})
			return
		}

		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", "error", err)
			return
		}

		cl := &client{
			id:   uuid.NewString(),
			room: RoomFor(uint(id)),
			conn: conn,
			send: make(chan []byte, sendBuffer),
		}
		h.join(cl)

		go h.writePump(cl)
		go h.readPump(cl)

		view, err := source.GetMatch(c.Request.Context(), uint(id))
		if err != nil {
			h.logger.Warn("ws initial snapshot failed", "error", err, "room", cl.room, "conn_id", cl.id)
			return
		}
		initial, err := json.Marshal(Message{Event: match.EventScoreUpdate, Data: view})
		if err != nil {
			h.logger.Error("ws marshal error", "error", err, "room", cl.room)
			return
		}
		h.deliver(cl, initial)
	}
}

// deliver queues payload for one subscriber if it is still in its room.
func (h *Hub) deliver(c *client, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.rooms[c.room][c.id]; !ok {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// readPump only services control frames; subscribers do not send commands.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("ws read error", "error", err, "conn_id", c.id)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
