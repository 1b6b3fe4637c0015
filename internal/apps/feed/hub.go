package feed

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// ChangeEvent is pushed to every connected client when any user's data
// changes. Clients refetch; the payload intentionally carries no data.
type ChangeEvent struct {
	Event     string    `json:"event"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub tracks websocket subscribers. Every change broadcasts to all clients
// regardless of owner: both sisters watch each other's feed.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, userName string) {
	h.mu.Lock()
	h.clients[conn] = userName
	h.mu.Unlock()
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) Broadcast(userName, event string) {
	msg := ChangeEvent{
		Event:     event,
		User:      userName,
		Timestamp: time.Now().UTC(),
	}

	// Full lock: concurrent WriteJSON calls on one conn are not safe.
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteJSON(msg)
	}
}
