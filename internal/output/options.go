package output

import (
	"bufio"
	"io"
)

// Option is a functional option for configuring Console instances.
type Option func(*Console)

// WithWriter configures the console to write to w. Default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(c *Console) {
		if w != nil {
			c.writer = w
		}
	}
}

// WithInput sets the reader Pause waits on. Share the reader with the
// prompter when both consume the same stream, so neither buffers ahead of the other.
func WithInput(r *bufio.Reader) Option {
	return func(c *Console) {
		c.input = r
	}
}

// WithPauseFunc replaces the default "read one line" wait used by Pause.
func WithPauseFunc(wait func()) Option {
	return func(c *Console) {
		c.wait = wait
	}
}

// PlainText disables colours and decorations regardless of the terminal.
func PlainText() Option {
	return func(c *Console) {
		c.forcePlain = true
	}
}

// WithWidth sets the minimum width of boxed headers.
func WithWidth(width int) Option {
	return func(c *Console) {
		if width > 0 {
			c.width = width
		}
	}
}
