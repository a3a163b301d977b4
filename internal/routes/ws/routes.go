package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/middleware"
	"github.com/lk16/gamesuite/internal/repository"
	"github.com/lk16/gamesuite/internal/ws"
)

func handleWs(c *websocket.Conn) {
	sessions := c.Locals("sessions").(repository.SessionStore) //nolint: errcheck

	h := ws.NewHandler(c, sessions, c.Params("id"))
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// upgradeOnly rejects plain HTTP requests to websocket routes.
func upgradeOnly(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws/games/:id", middleware.AuthOrToken(), upgradeOnly, websocket.New(handleWs))
}
