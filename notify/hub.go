// Package notify is a fire-and-forget websocket sink for user-facing
// confirmations after cart and order mutations. Delivery failures are
// dropped; they never fail the operation that produced them.
package notify

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Event struct {
	Event   string      `json:"event"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler upgrades the request and holds the connection open until the
// client goes away.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				break
			}
		}
	}
}

// Broadcast pushes an event to every connected client. Write errors drop the
// client and nothing else.
func (h *Hub) Broadcast(event, message string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(Event{Event: event, Message: message, Data: data}); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
