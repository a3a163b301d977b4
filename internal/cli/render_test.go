package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lk16/gamesuite/internal/checkers"
	"github.com/lk16/gamesuite/internal/othello"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestBoardAscii(t *testing.T) {
	lines := othello.NewBoardStart().ASCIIArtLines()

	r := NewRenderer(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii))
	require.Equal(t, strings.Join(lines, "\n"), r.Board(lines))
}

func TestBoardColoured(t *testing.T) {
	lines := checkers.NewBoardStart().ASCIIArtLines()

	r := NewRenderer(&bytes.Buffer{}, termenv.WithProfile(termenv.ANSI256))
	rendered := r.Board(lines)

	require.Contains(t, rendered, "\x1b[")
	require.Contains(t, rendered, "●")
	require.Contains(t, rendered, "○")
	require.Len(t, strings.Split(rendered, "\n"), len(lines))
}

func TestPrintBoard(t *testing.T) {
	var buf bytes.Buffer
	lines := othello.NewBoardStart().ASCIIArtLines()

	r := NewRenderer(&buf, termenv.WithProfile(termenv.Ascii))
	require.NoError(t, r.Println("Othello"))
	require.NoError(t, r.PrintBoard(lines))

	require.Equal(t, "Othello\n"+strings.Join(lines, "\n")+"\n", buf.String())
}
