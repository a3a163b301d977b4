// Package cli renders boards for the command line tools.
package cli

import (
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// Renderer colours the ASCII art of a board for a terminal.
type Renderer struct {
	out   *termenv.Output
	black termenv.Style
	white termenv.Style
	hint  termenv.Style
	frame termenv.Style
}

// NewRenderer returns a Renderer writing to w. The colour profile is
// detected from w unless an option overrides it.
func NewRenderer(w io.Writer, options ...termenv.OutputOption) *Renderer {
	out := termenv.NewOutput(w, options...)

	return &Renderer{
		out:   out,
		black: out.String().Foreground(out.Color("1")).Bold(),
		white: out.String().Foreground(out.Color("15")).Bold(),
		hint:  out.String().Foreground(out.Color("3")).Faint(),
		frame: out.String().Foreground(out.Color("8")),
	}
}

func (r *Renderer) styleRune(c rune) string {
	s := string(c)

	switch c {
	case '●', '▲':
		return r.black.Styled(s)
	case '○', '△':
		return r.white.Styled(s)
	case '·':
		return r.hint.Styled(s)
	case '+', '-', '|':
		return r.frame.Styled(s)
	default:
		return s
	}
}

// Line colours one line of board ASCII art.
func (r *Renderer) Line(line string) string {
	var builder strings.Builder
	for _, c := range line {
		builder.WriteString(r.styleRune(c))
	}
	return builder.String()
}

// Board colours all lines and joins them with newlines.
func (r *Renderer) Board(lines []string) string {
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = r.Line(line)
	}
	return strings.Join(styled, "\n")
}

// PrintBoard writes the coloured board followed by a newline.
func (r *Renderer) PrintBoard(lines []string) error {
	_, err := io.WriteString(r.out, r.Board(lines)+"\n")
	return err
}

// Println writes a bold line of text.
func (r *Renderer) Println(text string) error {
	_, err := io.WriteString(r.out, r.out.String(text).Bold().String()+"\n")
	return err
}
