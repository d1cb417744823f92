package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"booknest/internal/domain"
	applog "booknest/internal/log"
	"booknest/internal/services"
)

// UpgradeRequired gates the stream route to real websocket upgrades.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// CartStream pushes the user's cart over a websocket: one initial snapshot
// including the point-in-time balance, then a full refreshed list on every
// cart change until the client disconnects. The subscription handle is
// released on every exit path.
func CartStream(cart *services.CartService) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()
		u, _ := conn.Locals("user").(*domain.User)
		if u == nil {
			return
		}

		sub := cart.Watch(u.ID)
		defer sub.Cancel()

		view, err := cart.View(u.ID)
		if err != nil {
			applog.Error(nil, "cart.stream.view", err, map[string]any{"user": u.ID})
			return
		}
		if err := conn.WriteJSON(view); err != nil {
			return
		}

		// Drain reads so we notice the peer going away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case update, ok := <-sub.C:
				if !ok {
					return
				}
				if err := conn.WriteJSON(update); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
