package websocket

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/rezotera/iprep_portal/models"
)

// ServeWs upgrades one dashboard connection and parks it on the hub until the
// browser goes away. Clients never send anything we act on; the read loop only
// notices the close.
func (h *Hub) ServeWs(conn *websocket.Conn) {
	sess, ok := conn.Locals("session").(*models.Session)
	if !ok {
		conn.Close()
		return
	}

	client := &Client{SessionID: sess.ID, Conn: conn}
	h.Register <- client
	defer func() {
		h.Unregister <- client
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
