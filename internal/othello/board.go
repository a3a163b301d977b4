package othello

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/lk16/gamesuite/internal/game"
)

const (
	MaxX = 8
	MaxY = 8
)

// Disc is the content of a square.
type Disc int

const (
	EmptyDisc Disc = iota
	BlackDisc
	WhiteDisc
)

// Board represents an Othello board with position and turn information.
type Board struct {
	position Position
	turn     game.Side
}

// NewBoardStart creates a new board with the starting position.
func NewBoardStart() Board {
	return Board{
		position: NewPositionStart(),
		turn:     game.Black,
	}
}

// NewBoardEmpty creates a new board with an empty position.
func NewBoardEmpty() Board {
	return Board{
		position: NewPositionEmpty(),
		turn:     game.Black,
	}
}

// NewBoardFromDiscs creates a board from black and white bitboards.
func NewBoardFromDiscs(black, white uint64, turn game.Side) (Board, error) {
	player, opponent := black, white
	if turn == game.White {
		player, opponent = white, black
	}

	position, err := NewPosition(player, opponent)
	if err != nil {
		return Board{}, err
	}

	return Board{position: position, turn: turn}, nil
}

// NewBoardFromString creates a new board from a string representation.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != 34 {
		return Board{}, fmt.Errorf("board string must be 34 characters long, got %d", len(s))
	}

	player, err := strconv.ParseUint(s[:16], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid player position: %w", err)
	}

	opponent, err := strconv.ParseUint(s[16:32], 16, 64)
	if err != nil {
		return Board{}, fmt.Errorf("invalid opponent position: %w", err)
	}

	var turn game.Side
	switch s[32:34] {
	case "-w":
		turn = game.White
	case "-b":
		turn = game.Black
	default:
		return Board{}, fmt.Errorf("invalid turn: %s", s[32:34])
	}

	position, err := NewPosition(player, opponent)
	if err != nil {
		return Board{}, err
	}

	return Board{position: position, turn: turn}, nil
}

// NewBoardFromTranscript plays a list of moves from the start position.
func NewBoardFromTranscript(transcript string) (Board, error) {
	moves, err := ParseTranscript(transcript)
	if err != nil {
		return Board{}, err
	}

	board := NewBoardStart()
	for _, move := range moves {
		board, err = board.Apply(move)
		if err != nil {
			return Board{}, fmt.Errorf("failed to play transcript: %w", err)
		}
	}

	return board, nil
}

// Position returns the underlying position.
func (b Board) Position() Position {
	return b.position
}

// Turn returns the side to move.
func (b Board) Turn() game.Side {
	return b.turn
}

// Clone returns a copy of the board.
func (b Board) Clone() Board {
	return b
}

// Black returns the bitboard of black discs.
func (b Board) Black() uint64 {
	if b.turn == game.White {
		return b.position.opponent
	}
	return b.position.player
}

// White returns the bitboard of white discs.
func (b Board) White() uint64 {
	if b.turn == game.White {
		return b.position.player
	}
	return b.position.opponent
}

// Count returns the number of discs of a side.
func (b Board) Count(side game.Side) int {
	if side == game.White {
		return bits.OnesCount64(b.White())
	}
	return bits.OnesCount64(b.Black())
}

// Disc returns the content of a square, out of bounds squares are empty.
func (b Board) Disc(row, col int) Disc {
	index := Move{Row: row, Col: col}.Index()
	if index < 0 {
		return EmptyDisc
	}

	mask := uint64(1) << index
	switch {
	case b.Black()&mask != 0:
		return BlackDisc
	case b.White()&mask != 0:
		return WhiteDisc
	default:
		return EmptyDisc
	}
}

// passed returns the board with the turn handed to the opponent.
func (b Board) passed() Board {
	return Board{position: b.position.swapped(), turn: b.turn.Opponent()}
}

// mustPass returns whether the side to move can only pass.
func (b Board) mustPass() bool {
	return !b.position.HasMoves() && b.position.swapped().HasMoves()
}

// IsLegal checks if a move is legal for the side to move.
func (b Board) IsLegal(move Move) bool {
	if move == PassMove {
		return b.mustPass()
	}

	return b.position.IsValidMove(move.Index())
}

// Apply does a move and returns the new board. When the side to move next
// has no legal placement but the other side does, its turn is skipped.
func (b Board) Apply(move Move) (Board, error) {
	if !b.IsLegal(move) {
		return b, fmt.Errorf("%w: %s", game.ErrIllegalMove, move)
	}

	if move == PassMove {
		return b.passed(), nil
	}

	next := Board{
		position: b.position.DoMove(move.Index()),
		turn:     b.turn.Opponent(),
	}

	if next.mustPass() {
		next = next.passed()
	}

	return next, nil
}

// Play does a move. An invalid move returns the same board.
func (b Board) Play(move Move) Board {
	next, err := b.Apply(move)
	if err != nil {
		return b
	}
	return next
}

// LegalMoves returns the legal moves for the side to move in index order.
// It is [PassMove] if only the opponent can move and empty when the game is over.
func (b Board) LegalMoves() []Move {
	if b.mustPass() {
		return []Move{PassMove}
	}

	moves := make([]Move, 0, 16)
	for bb := b.position.Moves(); bb != 0; bb &= bb - 1 {
		moves = append(moves, NewMoveFromIndex(bits.TrailingZeros64(bb)))
	}
	return moves
}

// Status returns game.StatusGameOver when neither side can move, which
// includes a full board.
func (b Board) Status() game.Status {
	if !b.position.HasMoves() && !b.position.swapped().HasMoves() {
		return game.StatusGameOver
	}
	return game.StatusNone
}

// Winner returns the side with most discs once the game is over.
// The second return value is false for unfinished games and draws.
func (b Board) Winner() (game.Side, bool) {
	if b.Status() != game.StatusGameOver {
		return game.Black, false
	}

	black, white := b.Count(game.Black), b.Count(game.White)
	switch {
	case black > white:
		return game.Black, true
	case white > black:
		return game.White, true
	default:
		return game.Black, false
	}
}

// ASCIIArtLines returns the ascii art lines for the board.
func (b Board) ASCIIArtLines() []string {
	moves := b.position.Moves()
	black, white := b.Black(), b.White()

	lines := make([]string, MaxY+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for y := range MaxY {
		line := fmt.Sprintf("%d ", y+1)

		for x := range MaxX {
			mask := uint64(1) << ((y * MaxX) + x)

			switch {
			case white&mask != 0:
				line += "○ "
			case black&mask != 0:
				line += "● "
			case moves&mask != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[y+1] = line + "|"
	}

	lines[MaxY+1] = "+-----------------+"

	return lines
}

// String returns the string representation of the board.
func (b Board) String() string {
	var turnString string
	if b.turn == game.White {
		turnString = "-w"
	} else {
		turnString = "-b"
	}

	return fmt.Sprintf("%016x%016x%s", b.position.player, b.position.opponent, turnString)
}
