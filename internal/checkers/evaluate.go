package checkers

import "github.com/lk16/gamesuite/internal/game"

// locationValue is half the Manhattan distance of a square to the board center.
func locationValue(row, col int) int {
	return (abs(row+1-4) + abs(col+1-4)) / 2
}

// advancement counts how far a side's piece is from its home row.
func advancement(side game.Side, row int) int {
	if side == game.White {
		return 7 - row
	}
	return row
}

// safety scores how well a piece is protected against being jumped.
func (b Board) safety(square Square, piece Piece) int {
	if square.Row <= 1 || square.Row >= 6 || square.Col <= 1 || square.Col >= 6 {
		return 4
	}

	score := 0
	for _, d := range diagonals {
		neighbour, ok := b.Piece(Square{Row: square.Row + d[0], Col: square.Col + d[1]})

		switch {
		case ok && neighbour.Owner == piece.Owner:
			score++
		case piece.Kinged:
			score++
		case d[0] == piece.forward():
			score -= 2
		default:
			score--
		}
	}

	return score
}

// Evaluate returns a static score of the board, higher is better for side.
func (b Board) Evaluate(side game.Side) int {
	score := 0

	for row := range MaxY {
		for col := range MaxX {
			square := Square{Row: row, Col: col}
			piece, ok := b.Piece(square)
			if !ok {
				continue
			}

			weight := 1
			if piece.Kinged {
				weight = 2
			}

			value := locationValue(row, col) + advancement(piece.Owner, row) + weight + b.safety(square, piece)

			if piece.Owner == side {
				score += value
			} else {
				score -= value
			}
		}
	}

	return score
}
