package othello

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

// slowMoves computes valid moves by trying every square.
func slowMoves(p Position) uint64 {
	moves := uint64(0)
	for index := range 64 {
		if p.flipped(index) != 0 {
			moves |= uint64(1) << index
		}
	}
	return moves
}

func TestNewPosition(t *testing.T) {
	_, err := NewPosition(1, 1)
	require.Error(t, err)

	require.Panics(t, func() { NewPositionMust(3, 2) })

	p, err := NewPosition(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.Player())
	require.Equal(t, uint64(2), p.Opponent())
}

func TestPosition_MovesMatchesFlipped(t *testing.T) {
	p := NewPositionStart()

	for range 40 {
		require.Equal(t, slowMoves(p), p.Moves())

		moves := p.Moves()
		if moves == 0 {
			break
		}

		// Always play the highest move to walk a fixed line.
		p = p.DoMove(63 - bits.LeadingZeros64(moves))
	}
}

func TestPosition_DoMove(t *testing.T) {
	p := NewPositionStart()

	child := p.DoMove(19)
	require.Equal(t, 5, child.CountDiscs())
	require.Equal(t, 1, bits.OnesCount64(child.Player()))
	require.Equal(t, 4, bits.OnesCount64(child.Opponent()))

	require.Equal(t, p, p.DoMove(0))
	require.Equal(t, p, p.DoMove(27))
	require.Equal(t, p, p.DoMove(-1))
	require.Equal(t, p, p.DoMove(64))
}

func TestPosition_IsValidMove(t *testing.T) {
	p := NewPositionStart()

	for _, index := range []int{19, 26, 37, 44} {
		require.True(t, p.IsValidMove(index), "index %d", index)
	}

	for _, index := range []int{-1, 0, 7, 27, 28, 35, 36, 64} {
		require.False(t, p.IsValidMove(index), "index %d", index)
	}
}
