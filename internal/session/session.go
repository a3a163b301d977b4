package session

import (
	"context"
	"fmt"

	"github.com/lk16/gamesuite/internal/checkers"
	"github.com/lk16/gamesuite/internal/controller"
	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/othello"
	"github.com/lk16/gamesuite/internal/search"
)

// Session is a game of any kind with its history and optional AI player.
type Session interface {
	Kind() models.Kind
	View(id string) models.GameView
	Commit(move string) error
	Undo() bool
	Redo() bool
	Reset()
	PlayAI(ctx context.Context) error
	AIToMove() bool
	AutoReply() bool
	Record() models.GameRecord
}

// board is a game state that can also be drawn and scored.
type board[M game.Move, S any] interface {
	game.State[M, S]
	ASCIIArtLines() []string
	Winner() (game.Side, bool)
}

// codec knows how to create and parse the boards and moves of one game kind.
type codec[M game.Move, S board[M, S]] struct {
	kind      models.Kind
	start     func() S
	parse     func(string) (S, error)
	parseMove func(string) (M, error)
}

var checkersCodec = codec[checkers.Move, checkers.Board]{
	kind:      models.KindCheckers,
	start:     checkers.NewBoardStart,
	parse:     checkers.NewBoardFromString,
	parseMove: checkers.ParseMove,
}

var othelloCodec = codec[othello.Move, othello.Board]{
	kind:      models.KindOthello,
	start:     othello.NewBoardStart,
	parse:     othello.NewBoardFromString,
	parseMove: othello.ParseMove,
}

type gameSession[M game.Move, S board[M, S]] struct {
	codec      codec[M, S]
	controller *controller.Controller[M, S]
	aiSide     string
	aiDepth    int
	autoReply  bool
}

// New creates a session for a new game. If the request has no depth, defaultDepth is used.
func New(request models.NewGameRequest, defaultDepth int) (Session, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	depth := request.AIDepth
	if depth == 0 {
		depth = defaultDepth
	}

	switch request.Kind {
	case models.KindCheckers:
		return newGameSession(checkersCodec, request, depth)
	default:
		return newGameSession(othelloCodec, request, depth)
	}
}

// FromRecord restores a session from a persisted record.
func FromRecord(record models.GameRecord) (Session, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	switch record.Kind {
	case models.KindCheckers:
		return restoreGameSession(checkersCodec, record)
	default:
		return restoreGameSession(othelloCodec, record)
	}
}

func newSearcher[M game.Move, S board[M, S]](aiSide string, depth int) (*search.Searcher[M, S], error) {
	if aiSide == "" {
		return nil, nil
	}

	side, err := game.ParseSide(aiSide)
	if err != nil {
		return nil, err
	}

	return search.NewSearcher[M, S](side, search.WithDepth(depth), search.WithParallel(true)), nil
}

func newGameSession[M game.Move, S board[M, S]](
	c codec[M, S], request models.NewGameRequest, depth int,
) (*gameSession[M, S], error) {
	ai, err := newSearcher[M, S](request.AISide, depth)
	if err != nil {
		return nil, err
	}

	return &gameSession[M, S]{
		codec:      c,
		controller: controller.New(c.start(), ai),
		aiSide:     request.AISide,
		aiDepth:    depth,
		autoReply:  request.AutoReply,
	}, nil
}

func restoreGameSession[M game.Move, S board[M, S]](
	c codec[M, S], record models.GameRecord,
) (*gameSession[M, S], error) {
	ai, err := newSearcher[M, S](record.AISide, record.AIDepth)
	if err != nil {
		return nil, err
	}

	current, err := c.snapshot(record.Current)
	if err != nil {
		return nil, err
	}

	undo, err := c.snapshots(record.Undo)
	if err != nil {
		return nil, err
	}

	redo, err := c.snapshots(record.Redo)
	if err != nil {
		return nil, err
	}

	return &gameSession[M, S]{
		codec:      c,
		controller: controller.Restore(c.start(), current, undo, redo, ai),
		aiSide:     record.AISide,
		aiDepth:    record.AIDepth,
		autoReply:  record.AutoReply,
	}, nil
}

func (c codec[M, S]) snapshot(record models.SnapshotRecord) (controller.Snapshot[M, S], error) {
	state, err := c.parse(record.Board)
	if err != nil {
		return controller.Snapshot[M, S]{}, err
	}

	snapshot := controller.NewSnapshot[M, S](state)
	snapshot.Ply = record.Ply
	snapshot.AIMoved = record.AIMoved

	if record.LastMove != "" {
		move, err := c.parseMove(record.LastMove)
		if err != nil {
			return controller.Snapshot[M, S]{}, fmt.Errorf("invalid last move: %w", err)
		}
		snapshot.LastMove = &move
	}

	return snapshot, nil
}

func (c codec[M, S]) snapshots(records []models.SnapshotRecord) ([]controller.Snapshot[M, S], error) {
	snapshots := make([]controller.Snapshot[M, S], len(records))
	for i, record := range records {
		snapshot, err := c.snapshot(record)
		if err != nil {
			return nil, err
		}
		snapshots[i] = snapshot
	}
	return snapshots, nil
}

func snapshotRecord[M game.Move, S board[M, S]](snapshot controller.Snapshot[M, S]) models.SnapshotRecord {
	record := models.SnapshotRecord{
		Board:   snapshot.State.String(),
		Ply:     snapshot.Ply,
		AIMoved: snapshot.AIMoved,
	}

	if snapshot.LastMove != nil {
		record.LastMove = (*snapshot.LastMove).Key()
	}

	return record
}

func (s *gameSession[M, S]) Kind() models.Kind {
	return s.codec.kind
}

func (s *gameSession[M, S]) View(id string) models.GameView {
	snapshot := s.controller.Snapshot()

	view := models.GameView{
		ID:       id,
		Kind:     s.codec.kind,
		Board:    snapshot.State.String(),
		Turn:     snapshot.State.Turn().String(),
		Status:   snapshot.Status.String(),
		Moves:    game.MoveKeys(snapshot.Moves),
		Ply:      snapshot.Ply,
		AISide:   s.aiSide,
		CanUndo:  s.controller.CanUndo(),
		CanRedo:  s.controller.CanRedo(),
		ASCIIArt: snapshot.State.ASCIIArtLines(),
	}

	if snapshot.LastMove != nil {
		view.LastMove = (*snapshot.LastMove).Key()
	}

	if winner, ok := snapshot.State.Winner(); ok {
		view.Winner = winner.String()
	}

	return view
}

func (s *gameSession[M, S]) Commit(move string) error {
	_, err := s.controller.CommitKey(move)
	return err
}

func (s *gameSession[M, S]) Undo() bool {
	_, ok := s.controller.Undo()
	return ok
}

func (s *gameSession[M, S]) Redo() bool {
	_, ok := s.controller.Redo()
	return ok
}

func (s *gameSession[M, S]) Reset() {
	s.controller.Reset()
}

func (s *gameSession[M, S]) PlayAI(ctx context.Context) error {
	_, err := s.controller.PlayAI(ctx)
	return err
}

func (s *gameSession[M, S]) AIToMove() bool {
	return s.controller.AIToMove()
}

func (s *gameSession[M, S]) AutoReply() bool {
	return s.autoReply
}

func (s *gameSession[M, S]) Record() models.GameRecord {
	undo, redo := s.controller.Stacks()

	record := models.GameRecord{
		Kind:      s.codec.kind,
		AISide:    s.aiSide,
		AIDepth:   s.aiDepth,
		AutoReply: s.autoReply,
		Current:   snapshotRecord(s.controller.Snapshot()),
		Undo:      make([]models.SnapshotRecord, len(undo)),
		Redo:      make([]models.SnapshotRecord, len(redo)),
	}

	for i, snapshot := range undo {
		record.Undo[i] = snapshotRecord(snapshot)
	}
	for i, snapshot := range redo {
		record.Redo[i] = snapshotRecord(snapshot)
	}

	return record
}

// CommitAndReply commits a move and lets the AI answer while it is the AI's
// turn, when the session was created with auto_reply.
func CommitAndReply(ctx context.Context, s Session, move string) error {
	if err := s.Commit(move); err != nil {
		return err
	}

	if !s.AutoReply() {
		return nil
	}

	for s.AIToMove() {
		if err := s.PlayAI(ctx); err != nil {
			return err
		}
	}

	return nil
}
