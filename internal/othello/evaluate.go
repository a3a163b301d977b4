package othello

import (
	"math/bits"

	"github.com/lk16/gamesuite/internal/game"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// discValue scores a disc by its distance to the center and its distance
// from the owner's home row.
func discValue(side game.Side, index int) int {
	row, col := index/8, index%8

	value := (abs(row+1-4) + abs(col+1-4)) / 2
	if side == game.White {
		return value + 7 - row
	}
	return value + row
}

func sumDiscs(side game.Side, discs uint64) int {
	sum := 0
	for ; discs != 0; discs &= discs - 1 {
		sum += discValue(side, bits.TrailingZeros64(discs))
	}
	return sum
}

// Evaluate returns a static score of the board, higher is better for side.
func (b Board) Evaluate(side game.Side) int {
	score := sumDiscs(game.Black, b.Black()) - sumDiscs(game.White, b.White())
	if side == game.White {
		return -score
	}
	return score
}
