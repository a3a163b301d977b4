package checkers

import (
	"fmt"
	"strings"

	"github.com/lk16/gamesuite/internal/game"
)

// diagonals lists the row and column deltas of the four diagonal directions.
var diagonals = [4][2]int{{1, -1}, {1, 1}, {-1, -1}, {-1, 1}}

// canHop returns whether piece can go from one square to another in a single step or jump.
func (b Board) canHop(piece Piece, from, to Square) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}

	if b.Cell(to) != Empty {
		return false
	}

	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	if abs(dRow) != abs(dCol) || (abs(dRow) != 1 && abs(dRow) != 2) {
		return false
	}

	if !piece.Kinged && dRow*piece.forward() < 0 {
		return false
	}

	if abs(dRow) == 2 {
		jumped, ok := b.Piece(Square{Row: from.Row + dRow/2, Col: from.Col + dCol/2})
		return ok && jumped.Owner != piece.Owner
	}

	return true
}

// IsLegal checks whether a move is geometrically valid for the side to move:
// the origin holds an own piece, every hop is a valid step or jump on the
// board as it is during the chain, and the chain ends on the destination.
// It does not check the forced capture rule, LegalMoves does.
func (b Board) IsLegal(move Move) bool {
	from := move.From()

	piece, ok := b.Piece(from)
	if !ok || piece.Owner != b.turn {
		return false
	}

	path := move.Path()
	if path[len(path)-1] != move.To() {
		return false
	}

	if !move.IsJump() {
		return b.canHop(piece, from, path[0])
	}

	current := b
	at := from
	for i, to := range path {
		if abs(to.Row-at.Row) != 2 || !current.canHop(piece, at, to) {
			return false
		}

		captured := move.Captures[i]
		if captured.Row != (at.Row+to.Row)/2 || captured.Col != (at.Col+to.Col)/2 {
			return false
		}

		current = current.hop(piece, at, to)
		at = to
	}

	return true
}

// hop moves a piece one step or jump, removing a jumped piece. It does not promote.
func (b Board) hop(piece Piece, from, to Square) Board {
	b.cells[from.Row][from.Col] = Empty
	if abs(to.Row-from.Row) == 2 {
		b.cells[(from.Row+to.Row)/2][(from.Col+to.Col)/2] = Empty
	}
	b.cells[to.Row][to.Col] = piece.cell()
	return b
}

// finish promotes a man standing on the far row and passes the turn.
func (b Board) finish(at Square) Board {
	piece, ok := b.Piece(at)
	if ok && !piece.Kinged {
		if (piece.Owner == game.Black && at.Row == MaxY-1) || (piece.Owner == game.White && at.Row == 0) {
			piece.Kinged = true
			b.cells[at.Row][at.Col] = piece.cell()
		}
	}

	b.turn = b.turn.Opponent()
	return b
}

// Apply does a move and returns the new board. Promotion happens once, after
// the whole move. The receiver is not modified.
func (b Board) Apply(move Move) (Board, error) {
	if !b.IsLegal(move) {
		return b, fmt.Errorf("%w: %s", game.ErrIllegalMove, move)
	}

	piece, _ := b.Piece(move.From())

	current := b
	at := move.From()
	for _, to := range move.Path() {
		current = current.hop(piece, at, to)
		at = to
	}

	return current.finish(at), nil
}

// Play does a move. An invalid move returns the same board.
func (b Board) Play(move Move) Board {
	next, err := b.Apply(move)
	if err != nil {
		return b
	}
	return next
}

// jumpNode is a node in the tree of jumps that one piece can chain.
type jumpNode struct {
	jump     Move
	board    Board
	children []*jumpNode
}

// jumpTree returns all jumps that piece can do from a square, each with the
// jumps that can follow it on the board after that jump.
func (b Board) jumpTree(piece Piece, from Square) []*jumpNode {
	var nodes []*jumpNode

	for _, d := range diagonals {
		to := Square{Row: from.Row + 2*d[0], Col: from.Col + 2*d[1]}
		if !b.canHop(piece, from, to) {
			continue
		}

		next := b.hop(piece, from, to)
		nodes = append(nodes, &jumpNode{
			jump:     NewMove(from, to),
			board:    next,
			children: next.jumpTree(piece, to),
		})
	}

	return nodes
}

// MoveCache holds the legal moves of a board together with the board each move results in.
type MoveCache struct {
	moves  []Move
	boards map[string]Board
}

func (c *MoveCache) add(move Move, board Board) {
	key := move.Key()
	if _, ok := c.boards[key]; ok {
		return
	}

	c.moves = append(c.moves, move)
	c.boards[key] = board
}

// addChains adds one move for every leaf of the jump tree.
func (c *MoveCache) addChains(origin Square, captures []Square, nodes []*jumpNode) {
	for _, node := range nodes {
		chain := make([]Square, len(captures), len(captures)+1)
		copy(chain, captures)
		chain = append(chain, node.jump.Captures[0])

		if len(node.children) > 0 {
			c.addChains(origin, chain, node.children)
			continue
		}

		to := node.jump.To()
		move := Move{FromRow: origin.Row, FromCol: origin.Col, ToRow: to.Row, ToCol: to.Col, Captures: chain}
		c.add(move, node.board.finish(to))
	}
}

// NewMoveCache computes the legal moves for the side to move. If any piece
// can jump, only complete jump chains are legal.
func (b Board) NewMoveCache() *MoveCache {
	cache := &MoveCache{boards: make(map[string]Board)}

	for row := range MaxY {
		for col := range MaxX {
			from := Square{Row: row, Col: col}
			piece, ok := b.Piece(from)
			if !ok || piece.Owner != b.turn {
				continue
			}

			cache.addChains(from, nil, b.jumpTree(piece, from))
		}
	}

	if len(cache.moves) > 0 {
		return cache
	}

	for row := range MaxY {
		for col := range MaxX {
			from := Square{Row: row, Col: col}
			piece, ok := b.Piece(from)
			if !ok || piece.Owner != b.turn {
				continue
			}

			for _, d := range diagonals {
				to := Square{Row: row + d[0], Col: col + d[1]}
				if b.canHop(piece, from, to) {
					cache.add(NewMove(from, to), b.hop(piece, from, to).finish(to))
				}
			}
		}
	}

	return cache
}

// Moves returns the cached moves.
func (c *MoveCache) Moves() []Move {
	return c.moves
}

// Board returns the board resulting from the move with the given key.
func (c *MoveCache) Board(key string) (Board, bool) {
	board, ok := c.boards[key]
	return board, ok
}

// Boards returns the resulting boards in the order of Moves.
func (c *MoveCache) Boards() []Board {
	boards := make([]Board, len(c.moves))
	for i, move := range c.moves {
		boards[i] = c.boards[move.Key()]
	}
	return boards
}

// LegalMoves returns the legal moves for the side to move.
func (b Board) LegalMoves() []Move {
	return b.NewMoveCache().Moves()
}

// Successors returns the legal moves and the board after each of them, both
// taken from one move cache.
func (b Board) Successors() ([]Move, []Board) {
	cache := b.NewMoveCache()
	return cache.Moves(), cache.Boards()
}

// MovesFor returns the legal moves a side would have if it were to move.
func (b Board) MovesFor(side game.Side) []Move {
	return b.WithTurn(side).LegalMoves()
}

// HasMoveFrom returns whether the piece on a square has a legal move.
func (b Board) HasMoveFrom(square Square) bool {
	for _, move := range b.LegalMoves() {
		if move.From() == square {
			return true
		}
	}
	return false
}

// Status returns whether the side to move can still play.
func (b Board) Status() game.Status {
	if b.Count(b.turn) == 0 {
		return game.StatusGameOver
	}

	if len(b.LegalMoves()) == 0 {
		return game.StatusStalemate
	}

	return game.StatusNone
}

// Winner returns the winning side, if any. A side that cannot move loses.
func (b Board) Winner() (game.Side, bool) {
	if b.Status() == game.StatusNone {
		return game.Black, false
	}
	return b.turn.Opponent(), true
}

// MovesString returns the keys of the legal moves separated by spaces.
func (b Board) MovesString() string {
	return strings.Join(game.MoveKeys(b.LegalMoves()), " ")
}
