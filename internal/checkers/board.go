package checkers

import (
	"fmt"
	"strings"

	"github.com/lk16/gamesuite/internal/game"
)

const (
	MaxX = 8
	MaxY = 8
)

// Cell is the content of a square. The zero value is an empty square.
type Cell uint8

const (
	Empty Cell = iota
	BlackMan
	WhiteMan
	BlackKing
	WhiteKing
)

// Piece is a checkers piece.
type Piece struct {
	Owner  game.Side
	Kinged bool
}

// cell returns the cell holding the piece.
func (p Piece) cell() Cell {
	switch {
	case p.Owner == game.Black && p.Kinged:
		return BlackKing
	case p.Owner == game.White && p.Kinged:
		return WhiteKing
	case p.Owner == game.White:
		return WhiteMan
	default:
		return BlackMan
	}
}

// forward returns the row direction in which men of the owner move.
func (p Piece) forward() int {
	if p.Owner == game.White {
		return -1
	}
	return 1
}

// Piece returns the piece in a cell and whether there is one.
func (c Cell) Piece() (Piece, bool) {
	switch c {
	case BlackMan:
		return Piece{Owner: game.Black}, true
	case WhiteMan:
		return Piece{Owner: game.White}, true
	case BlackKing:
		return Piece{Owner: game.Black, Kinged: true}, true
	case WhiteKing:
		return Piece{Owner: game.White, Kinged: true}, true
	default:
		return Piece{}, false
	}
}

var cellChars = map[Cell]byte{
	Empty:     '.',
	BlackMan:  'b',
	WhiteMan:  'w',
	BlackKing: 'B',
	WhiteKing: 'W',
}

// Board is a checkers board with the side to move. Boards are values,
// assigning one copies all squares.
type Board struct {
	cells [MaxY][MaxX]Cell
	turn  game.Side
}

// NewBoardStart creates a new board with the starting position.
func NewBoardStart() Board {
	var b Board

	for row := range MaxY {
		for col := range MaxX {
			if (row+col)%2 != 0 {
				continue
			}

			switch {
			case row <= 2:
				b.cells[row][col] = BlackMan
			case row >= 5:
				b.cells[row][col] = WhiteMan
			}
		}
	}

	b.turn = game.Black
	return b
}

// NewBoardEmpty creates a board without pieces.
func NewBoardEmpty(turn game.Side) Board {
	return Board{turn: turn}
}

// NewBoardFromString parses the format returned by String: 64 cells in
// row-major order followed by "-b" or "-w".
func NewBoardFromString(s string) (Board, error) {
	if len(s) != 66 {
		return Board{}, fmt.Errorf("board string must be 66 characters long, got %d", len(s))
	}

	var b Board

	for i := range 64 {
		found := false
		for cell, char := range cellChars {
			if s[i] == char {
				b.cells[i/MaxX][i%MaxX] = cell
				found = true
				break
			}
		}

		if !found {
			return Board{}, fmt.Errorf("invalid cell %q at index %d", s[i], i)
		}
	}

	switch s[64:66] {
	case "-b":
		b.turn = game.Black
	case "-w":
		b.turn = game.White
	default:
		return Board{}, fmt.Errorf("invalid turn: %s", s[64:66])
	}

	return b, nil
}

// String returns the string representation of the board.
func (b Board) String() string {
	var sb strings.Builder

	for row := range MaxY {
		for col := range MaxX {
			sb.WriteByte(cellChars[b.cells[row][col]])
		}
	}

	if b.turn == game.White {
		sb.WriteString("-w")
	} else {
		sb.WriteString("-b")
	}

	return sb.String()
}

// Clone returns a copy of the board.
func (b Board) Clone() Board {
	return b
}

// Turn returns the side to move.
func (b Board) Turn() game.Side {
	return b.turn
}

// WithTurn returns a copy of the board with a different side to move.
func (b Board) WithTurn(turn game.Side) Board {
	b.turn = turn
	return b
}

// Cell returns the content of a square, out of bounds squares are empty.
func (b Board) Cell(square Square) Cell {
	if !square.InBounds() {
		return Empty
	}
	return b.cells[square.Row][square.Col]
}

// Piece returns the piece on a square and whether there is one.
func (b Board) Piece(square Square) (Piece, bool) {
	return b.Cell(square).Piece()
}

// WithPiece returns a copy of the board with a piece placed on a square.
func (b Board) WithPiece(square Square, piece Piece) Board {
	if square.InBounds() {
		b.cells[square.Row][square.Col] = piece.cell()
	}
	return b
}

// WithoutPiece returns a copy of the board with a square emptied.
func (b Board) WithoutPiece(square Square) Board {
	if square.InBounds() {
		b.cells[square.Row][square.Col] = Empty
	}
	return b
}

// Count returns the number of pieces owned by a side.
func (b Board) Count(side game.Side) int {
	count := 0
	for row := range MaxY {
		for col := range MaxX {
			if piece, ok := b.cells[row][col].Piece(); ok && piece.Owner == side {
				count++
			}
		}
	}
	return count
}

// ASCIIArtLines returns the ascii art lines for the board.
func (b Board) ASCIIArtLines() []string {
	origins := make(map[Square]bool)
	for _, move := range b.LegalMoves() {
		origins[move.From()] = true
	}

	lines := make([]string, MaxY+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range MaxY {
		line := fmt.Sprintf("%d ", row+1)

		for col := range MaxX {
			square := Square{Row: row, Col: col}

			switch b.cells[row][col] {
			case BlackMan:
				line += "● "
			case WhiteMan:
				line += "○ "
			case BlackKing:
				line += "▲ "
			case WhiteKing:
				line += "△ "
			default:
				line += "  "
			}

			if origins[square] {
				// Mark movable pieces by replacing the trailing space.
				line = line[:len(line)-1] + "·"
			}
		}

		lines[row+1] = line + "|"
	}

	lines[MaxY+1] = "+-----------------+"

	return lines
}
