package checkers

import (
	"testing"

	"github.com/lk16/gamesuite/internal/game"
	"github.com/stretchr/testify/require"
)

func TestBoard_LegalMovesStart(t *testing.T) {
	moves := NewBoardStart().LegalMoves()

	require.Equal(t, []string{
		"a3-b4", "c3-b4", "c3-d4", "e3-d4", "e3-f4", "g3-f4", "g3-h4",
	}, game.MoveKeys(moves))

	whiteMoves := NewBoardStart().MovesFor(game.White)
	require.Len(t, whiteMoves, 7)
}

func TestBoard_IsLegal(t *testing.T) {
	board := NewBoardEmpty(game.Black).
		WithPiece(Square{Row: 3, Col: 3}, blackMan()).
		WithPiece(Square{Row: 4, Col: 4}, whiteMan()).
		WithPiece(Square{Row: 2, Col: 6}, blackKing())

	tests := []struct {
		name  string
		move  Move
		legal bool
	}{
		{"forward step", NewMove(Square{Row: 3, Col: 3}, Square{Row: 4, Col: 2}), true},
		{"backward step for man", NewMove(Square{Row: 3, Col: 3}, Square{Row: 2, Col: 2}), false},
		{"step onto piece", NewMove(Square{Row: 3, Col: 3}, Square{Row: 4, Col: 4}), false},
		{"jump over opponent", NewMove(Square{Row: 3, Col: 3}, Square{Row: 5, Col: 5}), true},
		{"jump over empty", NewMove(Square{Row: 3, Col: 3}, Square{Row: 5, Col: 1}), false},
		{"backward step for king", NewMove(Square{Row: 2, Col: 6}, Square{Row: 1, Col: 5}), true},
		{"straight move", NewMove(Square{Row: 3, Col: 3}, Square{Row: 4, Col: 3}), false},
		{"empty origin", NewMove(Square{Row: 0, Col: 0}, Square{Row: 1, Col: 1}), false},
		{"origin out of bounds", Move{FromRow: -1, FromCol: 0, ToRow: 0, ToCol: 1}, false},
		{"destination out of bounds", Move{FromRow: 2, FromCol: 6, ToRow: 3, ToCol: 8}, false},
		{
			"captures ending elsewhere",
			Move{FromRow: 3, FromCol: 3, ToRow: 7, ToCol: 7, Captures: []Square{{Row: 4, Col: 4}}},
			false,
		},
		{
			"captures ending on destination",
			Move{FromRow: 3, FromCol: 3, ToRow: 5, ToCol: 5, Captures: []Square{{Row: 4, Col: 4}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.legal, board.IsLegal(tt.move))
		})
	}

	// Opponent pieces cannot be moved.
	require.False(t, board.IsLegal(NewMove(Square{Row: 4, Col: 4}, Square{Row: 3, Col: 5})))
}

func TestBoard_ForcedCapture(t *testing.T) {
	board := NewBoardEmpty(game.Black).
		WithPiece(Square{Row: 2, Col: 2}, blackMan()).
		WithPiece(Square{Row: 3, Col: 3}, whiteMan()).
		WithPiece(Square{Row: 2, Col: 6}, blackMan())

	moves := board.LegalMoves()
	require.Equal(t, []string{"c3-e5"}, game.MoveKeys(moves))

	// The step is geometrically fine but excluded by the capture rule.
	step := NewMove(Square{Row: 2, Col: 6}, Square{Row: 3, Col: 7})
	require.True(t, board.IsLegal(step))
	_, found := game.FindMove(moves, step.Key())
	require.False(t, found)
}

func TestBoard_JumpChainIsOneMove(t *testing.T) {
	board := NewBoardEmpty(game.Black).
		WithPiece(Square{Row: 2, Col: 2}, blackMan()).
		WithPiece(Square{Row: 3, Col: 3}, whiteMan()).
		WithPiece(Square{Row: 5, Col: 5}, whiteMan())

	moves := board.LegalMoves()
	require.Len(t, moves, 1)

	move := moves[0]
	require.Equal(t, Square{Row: 2, Col: 2}, move.From())
	require.Equal(t, Square{Row: 6, Col: 6}, move.To())
	require.Equal(t, []Square{{Row: 3, Col: 3}, {Row: 5, Col: 5}}, move.Captures)

	next, err := board.Apply(move)
	require.NoError(t, err)
	require.Equal(t, 0, next.Count(game.White))
	require.Equal(t, game.White, next.Turn())
	require.Equal(t, game.StatusGameOver, next.Status())

	piece, ok := next.Piece(Square{Row: 6, Col: 6})
	require.True(t, ok)
	require.Equal(t, blackMan(), piece)

	cache := board.NewMoveCache()
	cached, ok := cache.Board(move.Key())
	require.True(t, ok)
	require.Equal(t, next, cached)
}

func TestBoard_ApplyRejectsMismatchedDestination(t *testing.T) {
	board := NewBoardEmpty(game.Black).
		WithPiece(Square{Row: 2, Col: 2}, blackMan()).
		WithPiece(Square{Row: 3, Col: 3}, whiteMan())

	move := Move{FromRow: 2, FromCol: 2, ToRow: 7, ToCol: 7, Captures: []Square{{Row: 3, Col: 3}}}

	next, err := board.Apply(move)
	require.ErrorIs(t, err, game.ErrIllegalMove)
	require.Equal(t, board, next)
	require.Equal(t, board, board.Play(move))
}

func TestBoard_SuccessorsMatchApply(t *testing.T) {
	boards := []Board{
		NewBoardStart(),
		NewBoardEmpty(game.Black).
			WithPiece(Square{Row: 2, Col: 2}, blackMan()).
			WithPiece(Square{Row: 3, Col: 3}, whiteMan()).
			WithPiece(Square{Row: 5, Col: 5}, whiteMan()).
			WithPiece(Square{Row: 5, Col: 3}, whiteMan()),
		NewBoardEmpty(game.White).
			WithPiece(Square{Row: 1, Col: 1}, whiteMan()).
			WithPiece(Square{Row: 4, Col: 4}, whiteKing()),
	}

	for _, board := range boards {
		moves, next := board.Successors()
		require.Equal(t, game.MoveKeys(board.LegalMoves()), game.MoveKeys(moves))
		require.Len(t, next, len(moves))

		for i, move := range moves {
			applied, err := board.Apply(move)
			require.NoError(t, err)
			require.Equal(t, applied, next[i], move.Key())
		}
	}
}

func TestBoard_ChainsWithSameEndpoints(t *testing.T) {
	board := NewBoardEmpty(game.Black).
		WithPiece(Square{Row: 2, Col: 2}, blackMan()).
		WithPiece(Square{Row: 3, Col: 3}, whiteMan()).
		WithPiece(Square{Row: 5, Col: 3}, whiteMan()).
		WithPiece(Square{Row: 3, Col: 1}, whiteMan()).
		WithPiece(Square{Row: 5, Col: 1}, whiteMan())

	cache := board.NewMoveCache()
	require.ElementsMatch(t, []string{"c3-a5-c7", "c3-e5-c7"}, game.MoveKeys(cache.Moves()))

	viaLeft, ok := cache.Board("c3-a5-c7")
	require.True(t, ok)
	viaRight, ok := cache.Board("c3-e5-c7")
	require.True(t, ok)

	require.NotEqual(t, viaLeft, viaRight)

	_, ok = viaLeft.Piece(Square{Row: 3, Col: 3})
	require.True(t, ok)
	_, ok = viaRight.Piece(Square{Row: 3, Col: 1})
	require.True(t, ok)
}

func TestBoard_Promotion(t *testing.T) {
	board := NewBoardEmpty(game.Black).
		WithPiece(Square{Row: 6, Col: 0}, blackMan()).
		WithPiece(Square{Row: 0, Col: 6}, whiteMan())

	next, err := board.Apply(NewMove(Square{Row: 6, Col: 0}, Square{Row: 7, Col: 1}))
	require.NoError(t, err)

	piece, ok := next.Piece(Square{Row: 7, Col: 1})
	require.True(t, ok)
	require.True(t, piece.Kinged)

	_, err = next.Apply(NewMove(Square{Row: 0, Col: 6}, Square{Row: 1, Col: 5}))
	require.Error(t, err)
	require.ErrorIs(t, err, game.ErrIllegalMove)
}

func TestBoard_NoPromotionMidChain(t *testing.T) {
	// A king could continue from d8 over e7, a man that just reached d8 cannot.
	board := NewBoardEmpty(game.Black).
		WithPiece(Square{Row: 5, Col: 1}, blackMan()).
		WithPiece(Square{Row: 6, Col: 2}, whiteMan()).
		WithPiece(Square{Row: 6, Col: 4}, whiteMan())

	moves := board.LegalMoves()
	require.Equal(t, []string{"b6-d8"}, game.MoveKeys(moves))

	next := board.Play(moves[0])

	piece, ok := next.Piece(Square{Row: 7, Col: 3})
	require.True(t, ok)
	require.True(t, piece.Kinged)

	_, ok = next.Piece(Square{Row: 6, Col: 4})
	require.True(t, ok)
}

func TestBoard_ApplyIsPure(t *testing.T) {
	board := NewBoardStart()
	before := board

	for _, move := range board.LegalMoves() {
		_, err := board.Apply(move)
		require.NoError(t, err)
		require.Equal(t, before, board)
	}
}

func TestBoard_PlayInvalidMove(t *testing.T) {
	board := NewBoardStart()
	require.Equal(t, board, board.Play(NewMove(Square{Row: 0, Col: 0}, Square{Row: 1, Col: 1})))
}

func TestBoard_Status(t *testing.T) {
	require.Equal(t, game.StatusNone, NewBoardStart().Status())

	// White man on its promotion row with no captures is stuck.
	stuck := NewBoardEmpty(game.White).
		WithPiece(Square{Row: 0, Col: 0}, whiteMan()).
		WithPiece(Square{Row: 5, Col: 5}, blackMan())
	require.Equal(t, game.StatusStalemate, stuck.Status())

	winner, ok := stuck.Winner()
	require.True(t, ok)
	require.Equal(t, game.Black, winner)

	empty := NewBoardEmpty(game.Black).WithPiece(Square{Row: 5, Col: 5}, whiteMan())
	require.Equal(t, game.StatusGameOver, empty.Status())
}

func TestBoard_HasMoveFrom(t *testing.T) {
	board := NewBoardStart()

	require.True(t, board.HasMoveFrom(Square{Row: 2, Col: 2}))
	require.False(t, board.HasMoveFrom(Square{Row: 1, Col: 1}))
	require.False(t, board.HasMoveFrom(Square{Row: 3, Col: 3}))
}
