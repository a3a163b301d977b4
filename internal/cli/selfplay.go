package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/search"
)

// Board is a game state that can be drawn and has a winner when the game ends.
type Board[M game.Move, S any] interface {
	game.State[M, S]
	ASCIIArtLines() []string
	Winner() (game.Side, bool)
}

// SelfPlay lets black and white play against each other from start until the
// game ends or maxPlies moves were played. A maxPlies of zero means no limit.
// Each searcher plays a random first move. onMove is called after every move
// and may stop the game by returning an error.
func SelfPlay[M game.Move, S Board[M, S]](
	ctx context.Context,
	start S,
	black, white *search.Searcher[M, S],
	maxPlies int,
	onMove func(ply int, move M, state S) error,
) (S, []M, error) {
	state := start
	var moves []M

	moved := map[game.Side]bool{}
	players := map[game.Side]*search.Searcher[M, S]{
		game.Black: black,
		game.White: white,
	}

	for !state.Status().Terminal() && (maxPlies == 0 || len(moves) < maxPlies) {
		turn := state.Turn()
		player := players[turn]

		var move M
		if !moved[turn] {
			move = player.RandomMove(state)
			moved[turn] = true
		} else {
			var err error
			move, err = player.ChooseMove(ctx, state)
			if err != nil {
				return state, moves, fmt.Errorf("search failed at ply %d: %w", len(moves), err)
			}
		}

		state = state.Play(move)
		moves = append(moves, move)

		slog.Debug("Self-play move", "ply", len(moves), "side", turn, "move", move.Key())

		if onMove != nil {
			if err := onMove(len(moves), move, state); err != nil {
				return state, moves, err
			}
		}
	}

	return state, moves, nil
}
