package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/controller"
	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/repository"
)

// ErrorStatus maps errors of the game, controller and repository layers to HTTP status codes.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, controller.ErrNoAI),
		errors.Is(err, controller.ErrNotAITurn),
		errors.Is(err, controller.ErrGameOver),
		errors.Is(err, controller.ErrStale):
		return fiber.StatusConflict
	case errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrSaveNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repository.ErrSavesDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func sendError(c *fiber.Ctx, err error) error {
	return errorResponse(c, ErrorStatus(err), err)
}

func badRequest(c *fiber.Ctx, err error) error {
	return errorResponse(c, fiber.StatusBadRequest, err)
}
