package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lk16/gamesuite/internal/checkers"
	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/othello"
)

// Kind is the game being played.
type Kind string

const (
	KindCheckers Kind = "checkers"
	KindOthello  Kind = "othello"
)

// Validate checks that the kind is supported.
func (k Kind) Validate() error {
	switch k {
	case KindCheckers, KindOthello:
		return nil
	default:
		return fmt.Errorf("unknown game kind %q", k)
	}
}

// ValidateBoard checks that a board string can be parsed for this kind.
func (k Kind) ValidateBoard(board string) error {
	var err error
	switch k {
	case KindCheckers:
		_, err = checkers.NewBoardFromString(board)
	case KindOthello:
		_, err = othello.NewBoardFromString(board)
	default:
		err = k.Validate()
	}
	return err
}

// SnapshotRecord is the persisted form of one game state.
type SnapshotRecord struct {
	Board    string `json:"board"`
	Ply      int    `json:"ply"`
	LastMove string `json:"last_move,omitempty"`
	AIMoved  bool   `json:"ai_moved,omitempty"`
}

// GameRecord is the persisted form of a game including its undo and redo stacks.
// It implements sql.Scanner and driver.Valuer so it can be stored as jsonb.
type GameRecord struct {
	Kind      Kind             `json:"kind"`
	AISide    string           `json:"ai_side,omitempty"`
	AIDepth   int              `json:"ai_depth,omitempty"`
	AutoReply bool             `json:"auto_reply,omitempty"`
	Current   SnapshotRecord   `json:"current"`
	Undo      []SnapshotRecord `json:"undo"`
	Redo      []SnapshotRecord `json:"redo"`
}

// Validate checks the kind, the AI settings and every board in the record.
func (r *GameRecord) Validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}

	if r.AISide != "" {
		if _, err := game.ParseSide(r.AISide); err != nil {
			return fmt.Errorf("invalid ai_side: %w", err)
		}
	}

	if r.AIDepth < 0 {
		return errors.New("ai_depth cannot be negative")
	}

	if err := r.Kind.ValidateBoard(r.Current.Board); err != nil {
		return fmt.Errorf("invalid current board: %w", err)
	}

	for i, snapshot := range r.Undo {
		if err := r.Kind.ValidateBoard(snapshot.Board); err != nil {
			return fmt.Errorf("invalid board in undo stack at %d: %w", i, err)
		}
	}

	for i, snapshot := range r.Redo {
		if err := r.Kind.ValidateBoard(snapshot.Board); err != nil {
			return fmt.Errorf("invalid board in redo stack at %d: %w", i, err)
		}
	}

	return nil
}

// ParseRecord decodes and validates a JSON game record.
func ParseRecord(data []byte) (GameRecord, error) {
	var record GameRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return GameRecord{}, fmt.Errorf("cannot decode game record: %w", err)
	}

	if err := record.Validate(); err != nil {
		return GameRecord{}, fmt.Errorf("corrupt game record: %w", err)
	}

	return record, nil
}

// Marshal encodes the record as JSON.
func (r GameRecord) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Value implements the driver.Valuer interface.
func (r GameRecord) Value() (driver.Value, error) {
	return r.Marshal()
}

// Scan implements the sql.Scanner interface.
func (r *GameRecord) Scan(value interface{}) error {
	var bytes []byte

	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into GameRecord", value)
	}

	if bytes == nil {
		return errors.New("cannot scan nil into GameRecord")
	}

	record, err := ParseRecord(bytes)
	if err != nil {
		return err
	}

	*r = record
	return nil
}
