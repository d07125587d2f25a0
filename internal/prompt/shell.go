package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/chzyer/readline"

	"opshell/pkg/optypes"
)

// Shell prompts through ishell: arrow-key menus for choices and readline
// editing for free text.
type Shell struct {
	sh *ishell.Shell
}

// NewShell creates an ishell-backed prompter on the process terminal.
func NewShell() *Shell {
	sh := ishell.New()
	sh.SetPrompt("opshell> ")
	return &Shell{sh: sh}
}

func (s *Shell) readLine(prompt string) (string, error) {
	s.sh.SetPrompt(prompt)
	line, err := s.sh.ReadLineErr()
	if err != nil {
		return "", translate(err)
	}
	return line, nil
}

// translate maps readline's terminal errors onto the package's contract.
func translate(err error) error {
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return ErrInterrupted
	case errors.Is(err, io.EOF):
		return io.EOF
	default:
		return err
	}
}

func displays(options []optypes.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Display
	}
	return out
}

// Select shows an arrow-key menu. Aborting the menu counts as an interrupt.
func (s *Shell) Select(label string, options []optypes.Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from for %q", label)
	}
	choice := s.sh.MultiChoice(displays(options), label)
	if choice < 0 || choice >= len(options) {
		return "", ErrInterrupted
	}
	return options[choice].Key, nil
}

// Search reads a query and offers the provider's matches plus a cancel entry.
func (s *Shell) Search(label, placeholder string, provider optypes.OptionsProvider) (string, bool, error) {
	s.sh.Println(label)
	if placeholder != "" {
		s.sh.Println("  " + placeholder)
	}
	query, err := s.readLine("search> ")
	if err != nil {
		return "", false, err
	}
	query = strings.TrimSpace(query)

	options := provider(query)
	if len(options) == 0 {
		s.sh.Println("No matches.")
		return "", false, nil
	}

	choices := append(displays(options), "← Cancel")
	choice := s.sh.MultiChoice(choices, fmt.Sprintf("%d match(es) for %q", len(options), query))
	if choice < 0 || choice >= len(options) {
		return "", false, nil
	}
	return options[choice].Key, true, nil
}

// Confirm asks a yes/no question as a two-entry menu with def preselected first.
func (s *Shell) Confirm(label string, def bool) (bool, error) {
	options := []string{"Yes", "No"}
	if !def {
		options = []string{"No", "Yes"}
	}
	choice := s.sh.MultiChoice(options, label)
	if choice < 0 {
		return false, ErrInterrupted
	}
	return options[choice] == "Yes", nil
}

// Ask reads one line of free text as typed.
func (s *Shell) Ask(label string) (string, error) {
	return s.readLine(label + ": ")
}

// Wait blocks until the operator presses enter.
func (s *Shell) Wait() {
	_, _ = s.readLine("")
}
