// Package output renders opshell's menus, messages and results to a terminal.
//
// Console styles output with lipgloss when the writer supports colour and
// falls back to undecorated text otherwise. Colour support is detected per
// writer through termenv; NO_COLOR always wins.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"opshell/pkg/optypes"
)

// DefaultWidth is the minimum width of boxed headers.
const DefaultWidth = 60

// DefaultPauseMessage is shown by Pause when the caller passes an empty message.
const DefaultPauseMessage = "Press enter to continue..."

// Console implements optypes.Renderer on top of an io.Writer.
type Console struct {
	writer     io.Writer
	input      *bufio.Reader
	wait       func()
	forcePlain bool
	width      int

	renderer *lipgloss.Renderer
	styles   styles

	mu sync.Mutex
}

type styles struct {
	info, success, warning, danger, note lipgloss.Style
	title, subtitle, box, label, muted   lipgloss.Style
	header                               lipgloss.Style
	str, num, keyword, key               lipgloss.Style
}

// NewConsole creates a console writing to os.Stdout unless configured otherwise.
func NewConsole(options ...Option) *Console {
	c := &Console{
		writer: os.Stdout,
		width:  DefaultWidth,
	}
	for _, opt := range options {
		opt(c)
	}

	c.renderer = lipgloss.NewRenderer(c.writer)
	if !c.Colorful() {
		c.renderer.SetColorProfile(termenv.Ascii)
	}
	c.styles = newStyles(c.renderer)
	return c
}

// Colorful reports whether output is styled.
func (c *Console) Colorful() bool {
	if c.forcePlain || termenv.EnvNoColor() {
		return false
	}
	if c.renderer != nil {
		return c.renderer.ColorProfile() != termenv.Ascii
	}
	return termenv.NewOutput(c.writer).ColorProfile() != termenv.Ascii
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		info:     r.NewStyle().Foreground(lipgloss.Color("39")),
		success:  r.NewStyle().Foreground(lipgloss.Color("42")),
		warning:  r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		danger:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		note:     r.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		title:    r.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("250")),
		box:      r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("44")).Padding(0, 1),
		label:    r.NewStyle().Foreground(lipgloss.Color("44")),
		muted:    r.NewStyle().Foreground(lipgloss.Color("245")),
		header:   r.NewStyle().Bold(true).Padding(0, 1),
		str:      r.NewStyle().Foreground(lipgloss.Color("42")),
		num:      r.NewStyle().Foreground(lipgloss.Color("170")),
		keyword:  r.NewStyle().Foreground(lipgloss.Color("220")),
		key:      r.NewStyle().Foreground(lipgloss.Color("33")),
	}
}

func (c *Console) write(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.writer, text)
}

// Println writes text unstyled.
func (c *Console) Println(text string) { c.write(text) }

// Info writes an informational message.
func (c *Console) Info(text string) { c.write(c.styles.info.Render(text)) }

// Success writes a success message.
func (c *Console) Success(text string) { c.write(c.styles.success.Render(text)) }

// Warning writes a warning.
func (c *Console) Warning(text string) { c.write(c.styles.warning.Render(text)) }

// Error writes an error message.
func (c *Console) Error(text string) { c.write(c.styles.danger.Render(text)) }

// Note writes a secondary hint.
func (c *Console) Note(text string) { c.write(c.styles.note.Render(text)) }

// Header draws title and subtitle in a rounded box at least c.width wide.
func (c *Console) Header(title, subtitle string) {
	lines := []string{c.styles.title.Render(title)}
	if subtitle != "" {
		lines = append(lines, c.styles.subtitle.Render(subtitle))
	}
	content := strings.Join(lines, "\n")

	// Border (2) and padding (2) sit outside the content width.
	inner := c.width - 4
	if w := lipgloss.Width(content); w > inner {
		inner = w
	}
	c.write(c.styles.box.Width(inner + 2).Render(content))
}

// KeyValues writes aligned label/value rows.
func (c *Console) KeyValues(rows []optypes.KeyValue) {
	widest := 0
	for _, row := range rows {
		if w := ansi.StringWidth(row.Label); w > widest {
			widest = w
		}
	}

	var b strings.Builder
	for i, row := range rows {
		pad := strings.Repeat(" ", widest-ansi.StringWidth(row.Label))
		b.WriteString(c.styles.label.Render(row.Label) + pad + "  " + row.Value)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	c.write(b.String())
}

// Table draws rows under headers with a normal border.
func (c *Console) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.header
			}
			return c.renderer.NewStyle().Padding(0, 1)
		})
	c.write(t.String())
}

// Result pretty-prints value inside a box.
func (c *Console) Result(value any) {
	body := c.formatValue(value, 0)
	c.write(c.styles.box.Render(body))
}

// Pause shows message and waits for the operator to press enter.
// Without an input source it returns immediately.
func (c *Console) Pause(message string) {
	if message == "" {
		message = DefaultPauseMessage
	}
	c.write(c.styles.muted.Render(message))

	switch {
	case c.wait != nil:
		c.wait()
	case c.input != nil:
		_, _ = c.input.ReadString('\n')
	}
}
