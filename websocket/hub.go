package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rezotera/iprep_portal/models"
)

// Client is one dashboard connection, keyed by its portal session.
type Client struct {
	SessionID uuid.UUID
	Conn      *websocket.Conn
}

// Hub fans activity-log entries out to every connected dashboard. One hub per
// process, created in main and pumped by Run.
type Hub struct {
	clients   map[uuid.UUID]*websocket.Conn
	clientsMu sync.RWMutex

	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *models.ActivityEntry
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*websocket.Conn),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *models.ActivityEntry, 8),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			log.Printf("Dashboard connected: %s", client.SessionID)
			h.clientsMu.Lock()
			h.clients[client.SessionID] = client.Conn
			h.clientsMu.Unlock()
		case client := <-h.Unregister:
			log.Printf("Dashboard disconnected: %s", client.SessionID)
			h.clientsMu.Lock()
			if conn, ok := h.clients[client.SessionID]; ok && conn == client.Conn {
				delete(h.clients, client.SessionID)
			}
			h.clientsMu.Unlock()
		case entry := <-h.Broadcast:
			var dead []uuid.UUID
			h.clientsMu.RLock()
			for sessionID, conn := range h.clients {
				if err := conn.WriteJSON(entry); err != nil {
					log.Printf("Error pushing activity to session %s: %v", sessionID, err)
					conn.Close()
					dead = append(dead, sessionID)
				}
			}
			h.clientsMu.RUnlock()
			if len(dead) > 0 {
				h.clientsMu.Lock()
				for _, sessionID := range dead {
					delete(h.clients, sessionID)
				}
				h.clientsMu.Unlock()
			}
		}
	}
}

// Publish hands an entry to the hub without blocking the caller when no
// dashboard is listening.
func (h *Hub) Publish(entry *models.ActivityEntry) {
	select {
	case h.Broadcast <- entry:
	default:
	}
}
