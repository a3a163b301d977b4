package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/gamesuite/internal/checkers"
	"github.com/lk16/gamesuite/internal/cli"
	"github.com/lk16/gamesuite/internal/game"
	"github.com/lk16/gamesuite/internal/models"
	"github.com/lk16/gamesuite/internal/othello"
)

func main() {
	kind := flag.String("game", string(models.KindOthello), "the game of the board: checkers or othello")
	boardString := flag.String("board", "", "the board to show, empty for the start position")
	flag.Parse()

	var lines []string
	var err error

	switch models.Kind(*kind) {
	case models.KindCheckers:
		board := checkers.NewBoardStart()
		if *boardString != "" {
			board, err = checkers.NewBoardFromString(*boardString)
		}
		if err == nil {
			lines = append(board.ASCIIArtLines(), "Moves: "+board.MovesString())
		}
	case models.KindOthello:
		board := othello.NewBoardStart()
		if *boardString != "" {
			board, err = othello.NewBoardFromString(*boardString)
		}
		if err == nil {
			lines = append(board.ASCIIArtLines(), fmt.Sprintf("Black: %d White: %d", board.Count(game.Black), board.Count(game.White)))
		}
	default:
		err = models.Kind(*kind).Validate()
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := cli.NewRenderer(os.Stdout).PrintBoard(lines); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
