package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message is a chat payload relayed between connected users. The relay is
// broadcast-only: every connection except the sender receives it.
type Message struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// client wraps a websocket connection with a write lock; gorilla allows at
// most one concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub keeps track of active chat websocket connections by user id.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Register registers a user connection, replacing any existing one.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[userID]; ok && old.conn != conn {
		_ = old.conn.Close()
	}
	h.clients[userID] = &client{conn: conn}
}

// Unregister removes the user's connection, but only if it is still the
// one the caller owns. A handler whose connection was replaced must not
// tear down the replacement.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[userID]; ok && c.conn == conn {
		_ = c.conn.Close()
		delete(h.clients, userID)
	}
}

// Broadcast relays msg to every connection except the sender's.
func (h *Hub) Broadcast(sender string, msg Message) {
	h.mu.RLock()
	recipients := make([]*client, 0, len(h.clients))
	for id, c := range h.clients {
		if id == sender {
			continue
		}
		recipients = append(recipients, c)
	}
	h.mu.RUnlock()

	for _, c := range recipients {
		_ = c.writeJSON(msg)
	}
}

// Connected returns whether a user currently holds a connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
