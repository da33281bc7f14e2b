package handler

import (
	"go-inventory-ledger/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// RequireUpgrade rejects plain HTTP requests on the feed route
func (h *WSHandler) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Feed streams ledger events to the client until it disconnects
func (h *WSHandler) Feed() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		if !h.hub.Join(c) {
			c.Close()
			return
		}
		defer h.hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
