package game

import (
	"errors"
	"fmt"
	"strings"
)

// Side is one of the two players of a board game.
type Side int

const (
	Black Side = iota
	White
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return Black + White - s
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// ParseSide parses "black"/"b" or "white"/"w", case-insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return Black, nil
	case "white", "w":
		return White, nil
	default:
		return Black, fmt.Errorf("invalid side: %q", s)
	}
}

// Status tells whether the side to move can still play.
type Status int

const (
	// StatusNone means the side to move has at least one legal move.
	StatusNone Status = iota

	// StatusStalemate means the side to move still owns pieces but cannot move.
	StatusStalemate

	// StatusGameOver means the game has ended.
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusStalemate:
		return "stalemate"
	case StatusGameOver:
		return "game_over"
	default:
		return "none"
	}
}

// Terminal returns whether no more moves can be committed.
func (s Status) Terminal() bool {
	return s != StatusNone
}

var (
	// ErrIllegalMove is returned when a move is not in the current move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrEmptySearch is the panic value used when search is invoked without legal moves.
	ErrEmptySearch = errors.New("search invoked without legal moves")
)

// Move is implemented by the move types of every game.
// Two moves are the same move if and only if their keys are equal.
type Move interface {
	Key() string
}

// State is a game position including the side to move. Implementations are
// values: Play never modifies the receiver.
type State[M Move, S any] interface {
	// Turn returns the side to move.
	Turn() Side

	// LegalMoves returns the move set for the side to move.
	LegalMoves() []M

	// Play returns the state after doing a move.
	Play(move M) S

	// Status returns whether the side to move can still play.
	Status() Status

	// Evaluate returns a static score of the position, higher is better for side.
	Evaluate(side Side) int

	// String returns a serialized form that can be parsed back by the game package.
	String() string
}

// Successors is implemented by states that compute the state after every
// legal move while enumerating the moves.
type Successors[M Move, S any] interface {
	// Successors returns the legal moves and, at the same index, the state after each move.
	Successors() ([]M, []S)
}

// Expand returns the legal moves of state and the state after each of them.
// States implementing Successors are asked directly, others are played move by move.
func Expand[M Move, S State[M, S]](state S) ([]M, []S) {
	if successors, ok := any(state).(Successors[M, S]); ok {
		return successors.Successors()
	}

	moves := state.LegalMoves()
	next := make([]S, len(moves))
	for i, move := range moves {
		next[i] = state.Play(move)
	}
	return moves, next
}

// FindMove looks up a move by its key.
func FindMove[M Move](moves []M, key string) (M, bool) {
	for _, move := range moves {
		if move.Key() == key {
			return move, true
		}
	}

	var zero M
	return zero, false
}

// MoveKeys returns the keys of all moves in order.
func MoveKeys[M Move](moves []M) []string {
	keys := make([]string, len(moves))
	for i, move := range moves {
		keys[i] = move.Key()
	}
	return keys
}
