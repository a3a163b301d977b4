package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/history"
	"github.com/lk16/gamesuite/internal/search"
)

var (
	ErrNoAI      = errors.New("game has no AI player")
	ErrNotAITurn = errors.New("it is not the AI's turn")
	ErrGameOver  = errors.New("game is over")
	ErrStale     = errors.New("game changed while the AI was thinking")
)

// Snapshot is the full state of a game at one point in time.
type Snapshot[M game.Move, S game.State[M, S]] struct {
	State    S
	Moves    []M
	Status   game.Status
	Ply      int
	LastMove *M

	// AIMoved is set once the AI has done its first move of the game.
	AIMoved bool

	// next holds the state after each move, at the same index as Moves.
	next []S
}

// NewSnapshot creates a snapshot of a state, computing its moves, the state
// after each move and its status.
func NewSnapshot[M game.Move, S game.State[M, S]](state S) Snapshot[M, S] {
	moves, next := game.Expand[M, S](state)

	return Snapshot[M, S]{
		State:  state,
		Moves:  moves,
		Status: state.Status(),
		next:   next,
	}
}

// After returns the state after the move with the given key.
func (s Snapshot[M, S]) After(key string) (M, S, bool) {
	for i, move := range s.Moves {
		if move.Key() == key && i < len(s.next) {
			return move, s.next[i], true
		}
	}

	var (
		zeroMove  M
		zeroState S
	)
	return zeroMove, zeroState, false
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot[M, S]) Clone() Snapshot[M, S] {
	clone := s
	clone.Moves = make([]M, len(s.Moves))
	copy(clone.Moves, s.Moves)
	clone.next = make([]S, len(s.next))
	copy(clone.next, s.next)

	if s.LastMove != nil {
		lastMove := *s.LastMove
		clone.LastMove = &lastMove
	}

	return clone
}

// Controller owns the state of one game and its undo/redo history.
// It is safe for concurrent use.
type Controller[M game.Move, S game.State[M, S]] struct {
	mu      sync.Mutex
	start   S
	current Snapshot[M, S]
	history *history.History[Snapshot[M, S]]
	ai      *search.Searcher[M, S]

	// version changes on every mutation, it detects moves committed during a search.
	version uint64
}

// New creates a controller for a game starting at start. The searcher may be nil
// for games without an AI player.
func New[M game.Move, S game.State[M, S]](start S, ai *search.Searcher[M, S]) *Controller[M, S] {
	return &Controller[M, S]{
		start:   start,
		current: NewSnapshot[M, S](start),
		history: history.New[Snapshot[M, S]](),
		ai:      ai,
	}
}

// Restore creates a controller from a saved current snapshot and history stacks.
func Restore[M game.Move, S game.State[M, S]](
	start S, current Snapshot[M, S], undo, redo []Snapshot[M, S], ai *search.Searcher[M, S],
) *Controller[M, S] {
	return &Controller[M, S]{
		start:   start,
		current: current.Clone(),
		history: history.Restore(undo, redo),
		ai:      ai,
	}
}

// Snapshot returns the current state.
func (c *Controller[M, S]) Snapshot() Snapshot[M, S] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current.Clone()
}

// Stacks returns the undo and redo stacks, bottom first.
func (c *Controller[M, S]) Stacks() (undo, redo []Snapshot[M, S]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.history.Stacks()
}

// CanUndo returns whether there is a move to undo.
func (c *Controller[M, S]) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.history.CanUndo()
}

// CanRedo returns whether there is a move to redo.
func (c *Controller[M, S]) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.history.CanRedo()
}

// AI returns the searcher of the AI player, if any.
func (c *Controller[M, S]) AI() (*search.Searcher[M, S], bool) {
	return c.ai, c.ai != nil
}

// AIToMove returns whether the AI should do the next move.
func (c *Controller[M, S]) AIToMove() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ai != nil && !c.current.Status.Terminal() && c.current.State.Turn() == c.ai.Side()
}

// HasMoveFrom returns whether a legal move starts on the square in field notation.
func (c *Controller[M, S]) HasMoveFrom(square string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, move := range c.current.Moves {
		key := move.Key()
		if key == square || strings.HasPrefix(key, square+"-") {
			return true
		}
	}
	return false
}

// Commit does a move for the side to move. Moves that are not legal return
// game.ErrIllegalMove and leave the game unchanged.
func (c *Controller[M, S]) Commit(move M) (Snapshot[M, S], error) {
	return c.CommitKey(move.Key())
}

// CommitKey does the legal move with the given key.
func (c *Controller[M, S]) CommitKey(key string) (Snapshot[M, S], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, _, ok := c.current.After(key); !ok {
		return c.current.Clone(), fmt.Errorf("%w: %s", game.ErrIllegalMove, key)
	}

	c.commit(key, false)
	return c.current.Clone(), nil
}

// commit does the move with the given key from the move set, using the state
// computed with the move set. The caller must hold mu.
func (c *Controller[M, S]) commit(key string, byAI bool) {
	previous := c.current
	move, after, ok := previous.After(key)
	if !ok {
		panic(fmt.Sprintf("commit of unknown move %s", key))
	}

	c.history.Push(previous)

	next := NewSnapshot[M, S](after)
	next.Ply = previous.Ply + 1
	next.LastMove = &move
	next.AIMoved = previous.AIMoved || byAI

	c.current = next
	c.version++

	slog.Debug("Committed move", "move", move.Key(), "ply", next.Ply, "ai", byAI)

	if !next.Status.Terminal() && next.State.Turn() == previous.State.Turn() {
		slog.Debug("Side skipped", "side", previous.State.Turn().Opponent())
	}

	if next.Status.Terminal() {
		slog.Info("Game finished", "status", next.Status, "ply", next.Ply)
	}
}

// Undo restores the state before the last move.
func (c *Controller[M, S]) Undo() (Snapshot[M, S], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous, ok := c.history.Undo(c.current)
	if !ok {
		return c.current.Clone(), false
	}

	c.current = previous
	c.version++
	return c.current.Clone(), true
}

// Redo restores the state before the last undo.
func (c *Controller[M, S]) Redo() (Snapshot[M, S], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := c.history.Redo(c.current)
	if !ok {
		return c.current.Clone(), false
	}

	c.current = next
	c.version++
	return c.current.Clone(), true
}

// Reset starts a new game and clears the history.
func (c *Controller[M, S]) Reset() Snapshot[M, S] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = NewSnapshot[M, S](c.start)
	c.history.Clear()
	c.version++
	return c.current.Clone()
}

// PlayAI lets the AI choose and commit a move. The first AI move of a game is
// random. The search runs without holding the lock; if the game changes in
// the meantime ErrStale is returned and nothing is committed.
func (c *Controller[M, S]) PlayAI(ctx context.Context) (Snapshot[M, S], error) {
	c.mu.Lock()

	if c.ai == nil {
		defer c.mu.Unlock()
		return c.current.Clone(), ErrNoAI
	}

	if c.current.Status.Terminal() {
		defer c.mu.Unlock()
		return c.current.Clone(), ErrGameOver
	}

	if c.current.State.Turn() != c.ai.Side() {
		defer c.mu.Unlock()
		return c.current.Clone(), ErrNotAITurn
	}

	state := c.current.State
	opening := !c.current.AIMoved
	version := c.version
	c.mu.Unlock()

	var move M
	if opening {
		move = c.ai.RandomMove(state)
	} else {
		var err error
		move, err = c.ai.ChooseMove(ctx, state)
		if err != nil {
			return c.Snapshot(), fmt.Errorf("AI search failed: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.version != version {
		return c.current.Clone(), ErrStale
	}

	c.commit(move.Key(), true)
	return c.current.Clone(), nil
}
