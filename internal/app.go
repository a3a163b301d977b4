package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/config"
	"github.com/lk16/gamesuite/internal/middleware"
	"github.com/lk16/gamesuite/internal/repository"
	"github.com/lk16/gamesuite/internal/routes"
	"github.com/lk16/gamesuite/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
	schemaTimeout       = 10 * time.Second
)

// SetupApp loads the configuration, connects to the external services and
// builds the app. Failures are fatal.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	saves := repository.NewSaveRepositoryFromServices(services)
	if saves.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err := saves.EnsureSchema(ctx); err != nil {
			slog.Error("Failed to create schema", "error", err)
			os.Exit(1)
		}
	}

	return BuildApp(cfg, services), cfg
}

// BuildApp creates the Fiber app with all routes. Sessions are stored in
// Redis when services has a Redis client and in memory otherwise.
func BuildApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	sessions := repository.NewSessionStore(services)

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		c.Locals("sessions", sessions)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app)

	return app
}
