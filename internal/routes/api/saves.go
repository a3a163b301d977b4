package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/repository"
	"github.com/lk16/gamesuite/internal/session"
)

// SaveGame stores a game session in a named save slot.
func SaveGame(c *fiber.Ctx) error {
	var payload models.SaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, errInvalidBody)
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err)
	}

	s, err := session.Load(c.Context(), repository.NewSessionRepository(c), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	if err := repository.NewSaveRepository(c).Save(c.Context(), payload.Name, s.Record()); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListSaves lists save slots. The optional kind query parameter takes a
// comma separated list of game kinds.
func ListSaves(c *fiber.Ctx) error {
	var kinds []models.Kind
	if query := c.Query("kind"); query != "" {
		for _, part := range strings.Split(query, ",") {
			kind := models.Kind(strings.TrimSpace(part))
			if err := kind.Validate(); err != nil {
				return badRequest(c, err)
			}
			kinds = append(kinds, kind)
		}
	}

	slots, err := repository.NewSaveRepository(c).List(c.Context(), kinds...)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(slots)
}

// LoadSave starts a new game session from a save slot.
func LoadSave(c *fiber.Ctx) error {
	record, err := repository.NewSaveRepository(c).Load(c.Context(), c.Params("name"))
	if err != nil {
		return sendError(c, err)
	}

	s, err := session.FromRecord(record)
	if err != nil {
		return sendError(c, err)
	}

	view, err := session.Create(c.Context(), repository.NewSessionRepository(c), s)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

// DeleteSave removes a save slot.
func DeleteSave(c *fiber.Ctx) error {
	if err := repository.NewSaveRepository(c).Delete(c.Context(), c.Params("name")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
