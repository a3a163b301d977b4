package session

import (
	"context"
	"fmt"

	"github.com/lk16/gamesuite/internal/models"
)

// Store loads and stores session records.
type Store interface {
	Create(ctx context.Context, record models.GameRecord) (string, error)
	Get(ctx context.Context, id string) (models.GameRecord, error)
	Put(ctx context.Context, id string, record models.GameRecord) error
}

// Create stores a new session and returns its view.
func Create(ctx context.Context, store Store, s Session) (models.GameView, error) {
	id, err := store.Create(ctx, s.Record())
	if err != nil {
		return models.GameView{}, err
	}

	return s.View(id), nil
}

// Load restores the session with the given ID.
func Load(ctx context.Context, store Store, id string) (Session, error) {
	record, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s, err := FromRecord(record)
	if err != nil {
		return nil, fmt.Errorf("cannot restore session %s: %w", id, err)
	}

	return s, nil
}

// Update loads a session, runs action on it and stores the result. The
// session is stored even if action fails: a failed action never leaves a
// half-applied move behind. The returned view reflects the stored state.
func Update(ctx context.Context, store Store, id string, action func(s Session) error) (models.GameView, error) {
	s, err := Load(ctx, store, id)
	if err != nil {
		return models.GameView{}, err
	}

	actionErr := action(s)

	if err := store.Put(ctx, id, s.Record()); err != nil {
		return models.GameView{}, err
	}

	return s.View(id), actionErr
}
