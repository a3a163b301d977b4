package ws

import (
	"encoding/json"

	"github.com/lk16/gamesuite/internal/models"
)

// Events a client can send.
const (
	EventState  = "state"
	EventMove   = "move"
	EventAIMove = "ai_move"
	EventUndo   = "undo"
	EventRedo   = "redo"
	EventReset  = "reset"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing answers the Incoming message with the same ID. Error is set when
// the event was understood but could not be applied, Data then holds the
// unchanged game.
type Outgoing struct {
	ID    int              `json:"id"`
	Data  *models.GameView `json:"data,omitempty"`
	Error string           `json:"error,omitempty"`
}
