package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lk16/gamesuite/internal/checkers"
	"github.com/lk16/gamesuite/internal/cli"
	"github.com/lk16/gamesuite/internal/config"
	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/othello"
	"github.com/lk16/gamesuite/internal/search"
)

type flags struct {
	kind     string
	depth    int
	seed     uint64
	maxPlies int
	opening  string
	quiet    bool
}

func main() {
	config.SetLogLevel()

	var f flags
	flag.StringVar(&f.kind, "game", string(models.KindOthello), "the game to play: checkers or othello")
	flag.IntVar(&f.depth, "depth", search.DefaultDepth, "search depth of both players")
	flag.Uint64Var(&f.seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	flag.IntVar(&f.maxPlies, "plies", 0, "stop after this many moves, 0 plays until the game ends")
	flag.StringVar(&f.opening, "opening", "", "othello transcript to start from, such as f5d6c3")
	flag.BoolVar(&f.quiet, "quiet", false, "only print the final board")
	flag.Parse()

	if f.depth < 1 || f.depth > search.MaxDepth {
		fmt.Printf("depth must be between 1 and %d\n", search.MaxDepth)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer := cli.NewRenderer(os.Stdout)

	var err error
	switch models.Kind(f.kind) {
	case models.KindCheckers:
		if f.opening != "" {
			err = errors.New("-opening is only supported for othello")
			break
		}
		err = run[checkers.Move, checkers.Board](ctx, renderer, f, checkers.NewBoardStart())
	case models.KindOthello:
		start := othello.NewBoardStart()
		if f.opening != "" {
			start, err = othello.NewBoardFromTranscript(f.opening)
			if err != nil {
				break
			}
		}
		err = run[othello.Move, othello.Board](ctx, renderer, f, start)
	default:
		err = models.Kind(f.kind).Validate()
	}

	if err != nil {
		slog.Error("Self-play failed", "error", err)
		os.Exit(1)
	}
}

func run[M game.Move, S cli.Board[M, S]](ctx context.Context, renderer *cli.Renderer, f flags, start S) error {
	black := search.NewSearcher[M, S](game.Black, search.WithDepth(f.depth), search.WithSeed(f.seed), search.WithParallel(true))
	white := search.NewSearcher[M, S](game.White, search.WithDepth(f.depth), search.WithSeed(f.seed+1), search.WithParallel(true))

	if !f.quiet {
		if err := renderer.PrintBoard(start.ASCIIArtLines()); err != nil {
			return err
		}
	}

	final, moves, err := cli.SelfPlay(ctx, start, black, white, f.maxPlies, func(ply int, move M, state S) error {
		if f.quiet {
			return nil
		}
		if err := renderer.Println(fmt.Sprintf("%d. %s", ply, move.Key())); err != nil {
			return err
		}
		return renderer.PrintBoard(state.ASCIIArtLines())
	})
	if err != nil {
		return err
	}

	if f.quiet {
		if err := renderer.PrintBoard(final.ASCIIArtLines()); err != nil {
			return err
		}
	}

	result := "draw"
	if winner, ok := final.Winner(); ok {
		result = winner.String() + " wins"
	}
	if !final.Status().Terminal() {
		result = "unfinished"
	}

	return renderer.Println(fmt.Sprintf("%d moves, %s, %s", len(moves), final.Status(), result))
}
