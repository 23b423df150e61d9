// http/events.go
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/noteful/noteful-server/auth"
)

// handleEvents upgrades the connection and streams the user's entity
// change events until the client goes away.
func (s *Server) handleEvents(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	userID := auth.UserID(c)

	return websocket.New(func(conn *websocket.Conn) {
		s.hub.Register(userID, conn)
		defer s.hub.Unregister(userID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})(c)
}
