package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nshruti113/attack-map-dashboard/internal/metrics"
)

const (
	MessageSnapshot = "snapshot"
	MessageAttack   = "attack"

	writeWait = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope pushed to websocket clients
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub tracks connected websocket clients. Writes are serialized under mu,
// since a gorilla connection allows only one concurrent writer.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewHub(m *metrics.Metrics, logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
		metrics: m,
		logger:  logger,
	}
}

// register adds conn and sends it msg before any broadcast can reach it.
func (h *Hub) register(conn *websocket.Conn, msg Message) (string, error) {
	id := uuid.New().String()

	h.mu.Lock()
	defer h.mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		return id, err
	}
	h.clients[conn] = id
	h.metrics.ClientConnected()
	return id, nil
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(conn)
}

func (h *Hub) removeLocked(conn *websocket.Conn) {
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	h.metrics.ClientDisconnected()
	conn.Close()
}

// Broadcast sends msg to every client, dropping clients whose write fails.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, id := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Warn("websocket write error", zap.String("client_id", id), zap.Error(err))
			h.removeLocked(conn)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		h.removeLocked(conn)
	}
}

// handleWebSocket sends the current feed, then pushes every live attack
// until the client goes away.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade error", zap.Error(err))
		return
	}

	id, err := s.hub.register(conn, Message{Type: MessageSnapshot, Payload: s.feed.Snapshot()})
	if err != nil {
		s.logger.Warn("websocket snapshot write error", zap.String("client_id", id), zap.Error(err))
		conn.Close()
		return
	}
	defer s.hub.unregister(conn)

	s.logger.Info("websocket client connected", zap.String("client_id", id))

	// Keep connection alive until the client closes it
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.logger.Info("websocket client disconnected", zap.String("client_id", id), zap.Error(err))
			return
		}
	}
}
