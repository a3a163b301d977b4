package othello

import (
	"fmt"
	"strings"
)

// Move is a disc placement. PassMove is only legal when the side to move has
// no placements but the opponent does.
type Move struct {
	Row int
	Col int
}

// PassMove skips the turn.
var PassMove = Move{Row: -1, Col: -1}

// NewMoveFromIndex creates a move from a bit index.
func NewMoveFromIndex(index int) Move {
	return Move{Row: index / 8, Col: index % 8}
}

// InBounds returns whether the move targets a square on the board.
func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < 8 && m.Col >= 0 && m.Col < 8
}

// Index returns the bit index of the move, -1 for moves off the board.
func (m Move) Index() int {
	if !m.InBounds() {
		return -1
	}
	return m.Row*8 + m.Col
}

// Key returns the field notation of the move, "--" for a pass.
func (m Move) Key() string {
	if m == PassMove {
		return "--"
	}
	if !m.InBounds() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+m.Col, m.Row+1)
}

func (m Move) String() string {
	return m.Key()
}

// ParseMove converts field notation (e.g. "a1", "h8") to a move.
// PassMove is returned if the field is "--", "ps", or "pa".
func ParseMove(field string) (Move, error) {
	if len(field) != 2 {
		return Move{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if field == "--" || field == "ps" || field == "pa" {
		return PassMove, nil
	}

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Move{}, fmt.Errorf("invalid field: %q", field)
	}

	return Move{Row: int(field[1] - '1'), Col: int(field[0] - 'a')}, nil
}

// ParseTranscript parses a list of moves such as "f5 d6 c3" or "f5d6c3".
// Words starting with a digit are move numbers and are skipped.
func ParseTranscript(transcript string) ([]Move, error) {
	moves := make([]Move, 0)

	for _, word := range strings.Fields(transcript) {
		if word[0] >= '0' && word[0] <= '9' {
			continue
		}

		if len(word)%2 != 0 {
			return nil, fmt.Errorf("failed to parse move %s: odd length", word)
		}

		for i := 0; i < len(word); i += 2 {
			move, err := ParseMove(word[i : i+2])
			if err != nil {
				return nil, fmt.Errorf("failed to parse move %s: %w", word, err)
			}

			moves = append(moves, move)
		}
	}

	return moves, nil
}
