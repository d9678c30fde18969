package handlers

import (
	"log"

	"github.com/anjiri1684/pgym_booking/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
)

// ServeCalendar keeps a calendar page subscribed to availability updates.
// Clients only listen; anything they send is ignored.
func ServeCalendar(c *websocketcontrib.Conn) {
	websocket.Calendar.Register <- c
	defer func() {
		websocket.Calendar.Unregister <- c
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("Calendar websocket read error: %v", err)
			}
			return
		}
	}
}
