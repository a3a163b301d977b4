package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/routes/api"
	"github.com/lk16/gamesuite/internal/routes/version"
	"github.com/lk16/gamesuite/internal/routes/ws"
)

func SetupRoutes(app *fiber.App) {
	// Serve API routes
	api.SetupRoutes(app)

	// Serve live game updates
	ws.SetupRoutes(app)

	// Serve version info
	version.SetupRoutes(app)
}
