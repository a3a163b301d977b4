package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/services"
)

var (
	ErrSaveNotFound  = errors.New("save not found")
	ErrSavesDisabled = errors.New("save slots are disabled")
)

const createSavesTable = `
CREATE TABLE IF NOT EXISTS saved_games (
	name     TEXT PRIMARY KEY,
	kind     TEXT NOT NULL,
	record   JSONB NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// SaveRepository stores named save slots in Postgres.
type SaveRepository struct {
	db *sqlx.DB
}

func NewSaveRepository(c *fiber.Ctx) *SaveRepository {
	return NewSaveRepositoryFromServices(c.Locals("services").(*services.Services))
}

func NewSaveRepositoryFromServices(services *services.Services) *SaveRepository {
	return &SaveRepository{
		db: services.Postgres,
	}
}

// Enabled returns whether Postgres is configured.
func (repo *SaveRepository) Enabled() bool {
	return repo.db != nil
}

// EnsureSchema creates the saved_games table if it does not exist.
func (repo *SaveRepository) EnsureSchema(ctx context.Context) error {
	if !repo.Enabled() {
		return ErrSavesDisabled
	}

	if _, err := repo.db.ExecContext(ctx, createSavesTable); err != nil {
		return fmt.Errorf("error creating saved_games table: %w", err)
	}

	return nil
}

// Save stores a record under name, overwriting an existing save with that name.
func (repo *SaveRepository) Save(ctx context.Context, name string, record models.GameRecord) error {
	if !repo.Enabled() {
		return ErrSavesDisabled
	}

	if err := models.ValidateSaveName(name); err != nil {
		return err
	}

	query := `
		INSERT INTO saved_games (name, kind, record, saved_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO UPDATE
		SET kind = EXCLUDED.kind, record = EXCLUDED.record, saved_at = EXCLUDED.saved_at
	`

	if _, err := repo.db.ExecContext(ctx, query, name, record.Kind, record); err != nil {
		return fmt.Errorf("error saving game: %w", err)
	}

	return nil
}

// Load returns the record saved under name.
func (repo *SaveRepository) Load(ctx context.Context, name string) (models.GameRecord, error) {
	if !repo.Enabled() {
		return models.GameRecord{}, ErrSavesDisabled
	}

	var record models.GameRecord
	err := repo.db.GetContext(ctx, &record, `SELECT record FROM saved_games WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameRecord{}, ErrSaveNotFound
	}

	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error loading save %s: %w", name, err)
	}

	return record, nil
}

// List returns all save slots, most recent first. If kinds are given, only
// saves of those kinds are returned.
func (repo *SaveRepository) List(ctx context.Context, kinds ...models.Kind) ([]models.SaveSlot, error) {
	if !repo.Enabled() {
		return nil, ErrSavesDisabled
	}

	kindStrings := make([]string, len(kinds))
	for i, kind := range kinds {
		kindStrings[i] = string(kind)
	}

	query := `
		SELECT name, kind, saved_at
		FROM saved_games
		WHERE cardinality($1::text[]) = 0 OR kind = ANY($1)
		ORDER BY saved_at DESC
	`

	slots := make([]models.SaveSlot, 0)
	if err := repo.db.SelectContext(ctx, &slots, query, pq.Array(kindStrings)); err != nil {
		return nil, fmt.Errorf("error listing saves: %w", err)
	}

	return slots, nil
}

// Delete removes a save slot.
func (repo *SaveRepository) Delete(ctx context.Context, name string) error {
	if !repo.Enabled() {
		return ErrSavesDisabled
	}

	result, err := repo.db.ExecContext(ctx, `DELETE FROM saved_games WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("error deleting save: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting save: %w", err)
	}

	if affected == 0 {
		return ErrSaveNotFound
	}

	return nil
}
