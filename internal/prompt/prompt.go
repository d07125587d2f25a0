// Package prompt provides the operator input side of opshell: an ishell-backed
// prompter for terminals and a line-oriented prompter for pipes and tests.
package prompt

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"opshell/pkg/optypes"
)

// ErrInterrupted is returned when the operator interrupts a prompt (Ctrl+C).
var ErrInterrupted = errors.New("prompt interrupted")

// Prompter is an optypes.Prompter that can also block until the operator
// presses enter, so the renderer can pause on the same input stream.
type Prompter interface {
	optypes.Prompter
	Wait()
}

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New picks the ishell prompter when in is a terminal and the line prompter otherwise.
func New(in *os.File, out io.Writer) Prompter {
	if IsTerminal(in) {
		return NewShell()
	}
	return NewLine(bufio.NewReader(in), out)
}
