package checkers

import (
	"fmt"
	"strings"
)

// Square is a board coordinate. Row 0 is Black's home row.
type Square struct {
	Row int
	Col int
}

// InBounds returns whether the square is on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// String returns the field notation of the square, for example "c3" for row 2, column 2.
func (s Square) String() string {
	if !s.InBounds() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, s.Row+1)
}

// ParseSquare parses field notation such as "c3".
func ParseSquare(field string) (Square, error) {
	field = strings.ToLower(field)

	if len(field) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", field)
	}

	square := Square{Row: int(field[1] - '1'), Col: int(field[0] - 'a')}
	if !square.InBounds() {
		return Square{}, fmt.Errorf("invalid square %q", field)
	}

	return square, nil
}

// Move is a logical checkers move: a single step or a complete jump chain.
// Captures lists the jumped squares in the order they were jumped.
type Move struct {
	FromRow  int
	FromCol  int
	ToRow    int
	ToCol    int
	Captures []Square
}

// NewMove creates a step or single jump move, computing the captured square of a jump.
func NewMove(from, to Square) Move {
	move := Move{FromRow: from.Row, FromCol: from.Col, ToRow: to.Row, ToCol: to.Col}
	if abs(to.Row-from.Row) == 2 {
		move.Captures = []Square{{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}}
	}
	return move
}

// From returns the origin square.
func (m Move) From() Square {
	return Square{Row: m.FromRow, Col: m.FromCol}
}

// To returns the final destination square.
func (m Move) To() Square {
	return Square{Row: m.ToRow, Col: m.ToCol}
}

// IsJump returns whether the move captures at least one piece.
func (m Move) IsJump() bool {
	return len(m.Captures) > 0
}

// Path returns all landing squares of the move. A step has one landing square.
func (m Move) Path() []Square {
	if !m.IsJump() {
		return []Square{m.To()}
	}

	path := make([]Square, 0, len(m.Captures))
	at := m.From()
	for _, captured := range m.Captures {
		at = Square{Row: 2*captured.Row - at.Row, Col: 2*captured.Col - at.Col}
		path = append(path, at)
	}
	return path
}

// Key identifies the move by its origin and every landing square, e.g. "c3-e5-g7".
func (m Move) Key() string {
	var sb strings.Builder
	sb.WriteString(m.From().String())
	for _, square := range m.Path() {
		sb.WriteByte('-')
		sb.WriteString(square.String())
	}
	return sb.String()
}

func (m Move) String() string {
	return m.Key()
}

// ParseMove parses a move key such as "c3-d4" or "c3-e5-g7".
// Every hop of a multi-hop path must be a jump.
func ParseMove(key string) (Move, error) {
	fields := strings.Split(key, "-")
	if len(fields) < 2 {
		return Move{}, fmt.Errorf("invalid move %q: expected at least two squares", key)
	}

	squares := make([]Square, len(fields))
	for i, field := range fields {
		square, err := ParseSquare(field)
		if err != nil {
			return Move{}, fmt.Errorf("invalid move %q: %w", key, err)
		}
		squares[i] = square
	}

	from := squares[0]
	to := squares[len(squares)-1]
	move := Move{FromRow: from.Row, FromCol: from.Col, ToRow: to.Row, ToCol: to.Col}

	for i := 1; i < len(squares); i++ {
		prev, next := squares[i-1], squares[i]
		dRow, dCol := next.Row-prev.Row, next.Col-prev.Col

		if abs(dRow) != abs(dCol) || (abs(dRow) != 1 && abs(dRow) != 2) {
			return Move{}, fmt.Errorf("invalid move %q: %s to %s is not diagonal", key, prev, next)
		}

		if abs(dRow) == 1 {
			if len(squares) != 2 {
				return Move{}, fmt.Errorf("invalid move %q: steps cannot be chained", key)
			}
			continue
		}

		move.Captures = append(move.Captures, Square{Row: prev.Row + dRow/2, Col: prev.Col + dCol/2})
	}

	return move, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
