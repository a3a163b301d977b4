package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/config"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/repository"
	"github.com/lk16/gamesuite/internal/session"
)

// AITimeout bounds the time a single request may spend searching.
const AITimeout = 8 * time.Second

var errInvalidBody = errors.New("invalid request body")

// CreateGame starts a new game session.
func CreateGame(c *fiber.Ctx) error {
	var payload models.NewGameRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, errInvalidBody)
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err)
	}

	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	s, err := session.New(payload, cfg.AIDepth)
	if err != nil {
		return badRequest(c, err)
	}

	// The AI may own the first move.
	if s.AutoReply() {
		ctx, cancel := context.WithTimeout(c.Context(), AITimeout)
		defer cancel()

		for s.AIToMove() {
			if err := s.PlayAI(ctx); err != nil {
				return sendError(c, err)
			}
		}
	}

	view, err := session.Create(c.Context(), repository.NewSessionRepository(c), s)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

// GetGame returns the current state of a game.
func GetGame(c *fiber.Ctx) error {
	id := c.Params("id")

	s, err := session.Load(c.Context(), repository.NewSessionRepository(c), id)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(s.View(id))
}

// DeleteGame ends a game session.
func DeleteGame(c *fiber.Ctx) error {
	if err := repository.NewSessionRepository(c).Delete(c.Context(), c.Params("id")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CommitMove plays the move in the request body. Sessions with auto_reply
// also get the AI's answer before the response is sent.
func CommitMove(c *fiber.Ctx) error {
	var payload models.MoveRequest
	if err := c.BodyParser(&payload); err != nil || payload.Move == "" {
		return badRequest(c, errInvalidBody)
	}

	ctx, cancel := context.WithTimeout(c.Context(), AITimeout)
	defer cancel()

	return update(c, func(s session.Session) error {
		return session.CommitAndReply(ctx, s, payload.Move)
	})
}

// UndoMove reverts the last move. Without history it is a no-op.
func UndoMove(c *fiber.Ctx) error {
	return update(c, func(s session.Session) error {
		s.Undo()
		return nil
	})
}

// RedoMove reapplies the last undone move. Without undone moves it is a no-op.
func RedoMove(c *fiber.Ctx) error {
	return update(c, func(s session.Session) error {
		s.Redo()
		return nil
	})
}

// ResetGame returns to the start position and clears the history.
func ResetGame(c *fiber.Ctx) error {
	return update(c, func(s session.Session) error {
		s.Reset()
		return nil
	})
}

// PlayAI lets the AI play one move.
func PlayAI(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), AITimeout)
	defer cancel()

	return update(c, func(s session.Session) error {
		return s.PlayAI(ctx)
	})
}

func update(c *fiber.Ctx, action func(s session.Session) error) error {
	view, err := session.Update(c.Context(), repository.NewSessionRepository(c), c.Params("id"), action)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}
