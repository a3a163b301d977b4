package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.AuthOrToken())

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Delete("/games/:id", DeleteGame)
	apiGroup.Post("/games/:id/moves", CommitMove)
	apiGroup.Post("/games/:id/undo", UndoMove)
	apiGroup.Post("/games/:id/redo", RedoMove)
	apiGroup.Post("/games/:id/reset", ResetGame)
	apiGroup.Post("/games/:id/ai", PlayAI)
	apiGroup.Post("/games/:id/save", SaveGame)

	// Save slot routes
	apiGroup.Get("/saves", ListSaves)
	apiGroup.Post("/saves/:name/load", LoadSave)
	apiGroup.Delete("/saves/:name", DeleteSave)
}
