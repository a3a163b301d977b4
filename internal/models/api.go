package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/search"
)

// NewGameRequest represents the payload for creating a game.
type NewGameRequest struct {
	Kind      Kind   `json:"kind"`
	AISide    string `json:"ai_side"`
	AIDepth   int    `json:"ai_depth"`
	AutoReply bool   `json:"auto_reply"`
}

// Validate validates the new game request.
func (r *NewGameRequest) Validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}

	if r.AISide != "" {
		if _, err := game.ParseSide(r.AISide); err != nil {
			return err
		}
	}

	if r.AIDepth < 0 || r.AIDepth > search.MaxDepth {
		return fmt.Errorf("ai_depth must be between 0 and %d", search.MaxDepth)
	}

	if r.AutoReply && r.AISide == "" {
		return errors.New("auto_reply requires ai_side")
	}

	return nil
}

// MoveRequest represents the payload for committing a move.
type MoveRequest struct {
	Move string `json:"move"`
}

var saveNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// SaveRequest represents the payload for saving a game.
type SaveRequest struct {
	Name string `json:"name"`
}

// Validate validates the save request.
func (r *SaveRequest) Validate() error {
	return ValidateSaveName(r.Name)
}

// ValidateSaveName checks that a save slot name is 1-64 letters, digits, dashes or underscores.
func ValidateSaveName(name string) error {
	if !saveNameRegex.MatchString(name) {
		return fmt.Errorf("invalid save name %q", name)
	}
	return nil
}

// GameView represents the state of a game as returned by the API.
type GameView struct {
	ID       string   `json:"id"`
	Kind     Kind     `json:"kind"`
	Board    string   `json:"board"`
	Turn     string   `json:"turn"`
	Status   string   `json:"status"`
	Winner   string   `json:"winner,omitempty"`
	Moves    []string `json:"moves"`
	Ply      int      `json:"ply"`
	LastMove string   `json:"last_move,omitempty"`
	AISide   string   `json:"ai_side,omitempty"`
	CanUndo  bool     `json:"can_undo"`
	CanRedo  bool     `json:"can_redo"`
	ASCIIArt []string `json:"ascii_art"`
}

// SaveSlot describes a saved game.
type SaveSlot struct {
	Name    string    `json:"name"     db:"name"`
	Kind    Kind      `json:"kind"     db:"kind"`
	SavedAt time.Time `json:"saved_at" db:"saved_at"`
}

type VersionResponse struct {
	Commit string `json:"commit"`
}
