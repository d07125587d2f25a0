package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"opshell/pkg/optypes"
)

// Line reads answers one line at a time. Choices are picked by number or key,
// confirmations accept y/yes/n/no. End of input surfaces as io.EOF.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine creates a line prompter reading from in and echoing prompts to out.
func NewLine(in *bufio.Reader, out io.Writer) *Line {
	return &Line{in: in, out: out}
}

func (l *Line) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, format, args...)
}

// readLine returns the next line without its terminator. A final line without
// a newline is still returned; io.EOF is reported only when nothing was read.
func (l *Line) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Select lists the options numbered from 1 and re-asks until a valid choice is made.
func (l *Line) Select(label string, options []optypes.Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", label)
	}
	for {
		l.printf("%s\n", label)
		for i, opt := range options {
			l.printf("  %d) %s\n", i+1, opt.Display)
		}
		l.printf("> ")

		answer, err := l.readLine()
		if err != nil {
			return "", err
		}
		if key, ok := pick(options, strings.TrimSpace(answer)); ok {
			return key, nil
		}
		l.printf("Invalid choice %q\n", answer)
	}
}

// pick resolves an answer given as a 1-based number or an option key.
func pick(options []optypes.Option, answer string) (string, bool) {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1].Key, true
	}
	for _, opt := range options {
		if opt.Key == answer {
			return opt.Key, true
		}
	}
	return "", false
}

// Search reads a query, then offers the provider's matches. An empty answer
// or 0 at the choice step, or a query without matches, selects nothing.
func (l *Line) Search(label, placeholder string, provider optypes.OptionsProvider) (string, bool, error) {
	l.printf("%s\n", label)
	if placeholder != "" {
		l.printf("  (%s)\n", placeholder)
	}
	l.printf("search> ")

	query, err := l.readLine()
	if err != nil {
		return "", false, err
	}

	options := provider(strings.TrimSpace(query))
	if len(options) == 0 {
		l.printf("No matches.\n")
		return "", false, nil
	}

	for {
		for i, opt := range options {
			l.printf("  %d) %s\n", i+1, opt.Display)
		}
		l.printf("  0) Cancel\n> ")

		answer, err := l.readLine()
		if err != nil {
			return "", false, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" || answer == "0" {
			return "", false, nil
		}
		if key, ok := pick(options, answer); ok {
			return key, true, nil
		}
		l.printf("Invalid choice %q\n", answer)
	}
}

// Confirm asks a yes/no question; an empty answer returns def.
func (l *Line) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		l.printf("%s [%s]: ", label, hint)
		answer, err := l.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		l.printf("Please answer yes or no.\n")
	}
}

// Ask reads one free-form line and returns it as typed, without the line terminator.
func (l *Line) Ask(label string) (string, error) {
	l.printf("%s: ", label)
	return l.readLine()
}

// Wait consumes one line, ignoring its content.
func (l *Line) Wait() {
	_, _ = l.readLine()
}
