// Package shell implements the interactive operator shell: a small state
// machine that walks the operator from the main menu into categories, runs
// scripts behind the production safety gate and keeps results in the session.
package shell

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/charmbracelet/log"

	"opshell/internal/discovery"
	"opshell/internal/logger"
	"opshell/internal/prompt"
	"opshell/internal/session"
	"opshell/pkg/optypes"
)

// Sentinel errors reported by the controller.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrVariableNotFound = errors.New("variable not found")
	ErrExecutionFailed  = errors.New("script execution failed")
)

// StateKind enumerates the controller states.
type StateKind int

// Controller states.
const (
	MainMenu StateKind = iota
	CategoryMenu
	Exited
)

// State is the current position of the operator. Category is set only in CategoryMenu.
type State struct {
	Kind     StateKind
	Category string
}

func (s State) String() string {
	switch s.Kind {
	case MainMenu:
		return "main"
	case CategoryMenu:
		return "category:" + s.Category
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("unknown(%d)", int(s.Kind))
	}
}

// Deps are the collaborators a Controller drives. Registries and the session
// are owned by the caller and shared by reference.
type Deps struct {
	Categories *discovery.CategoryRegistry
	Scripts    *discovery.ScriptIndex
	Checks     *discovery.CheckRegistry
	Session    *session.Store
	Prompter   optypes.Prompter
	Renderer   optypes.Renderer
	// Evaluator backs the raw execution action; nil hides the action.
	Evaluator optypes.Evaluator
}

// Controller is the menu state machine. It is driven by a single goroutine.
type Controller struct {
	categories *discovery.CategoryRegistry
	scripts    *discovery.ScriptIndex
	checks     *discovery.CheckRegistry
	session    *session.Store
	prompter   optypes.Prompter
	out        optypes.Renderer
	evaluator  optypes.Evaluator

	settings Settings
	state    State
	logger   *log.Logger
}

// New creates a controller starting in MainMenu.
func New(deps Deps, settings Settings) *Controller {
	if deps.Session == nil {
		deps.Session = session.New()
	}
	if deps.Checks == nil {
		deps.Checks = discovery.NewCheckRegistry(discovery.CheckConfig{})
	}
	if deps.Scripts == nil && deps.Categories != nil {
		deps.Scripts = discovery.NewScriptIndex(deps.Categories)
	}
	return &Controller{
		categories: deps.Categories,
		scripts:    deps.Scripts,
		checks:     deps.Checks,
		session:    deps.Session,
		prompter:   deps.Prompter,
		out:        deps.Renderer,
		evaluator:  deps.Evaluator,
		settings:   settings,
		state:      State{Kind: MainMenu},
		logger:     logger.NewStyledLogger("Controller"),
	}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Session returns the session owned by the controller.
func (c *Controller) Session() *session.Store { return c.session }

// StartIn makes the loop begin in the given category instead of the main menu.
// An empty key keeps MainMenu.
func (c *Controller) StartIn(category string) {
	if category == "" {
		return
	}
	c.transition(State{Kind: CategoryMenu, Category: category})
}

// Run shows the welcome banner and loops until the operator exits or input ends.
func (c *Controller) Run() {
	c.Welcome()
	for c.state.Kind != Exited {
		c.Step()
	}
	c.out.Info("👋 Goodbye! Thanks for using " + c.settings.AppName + ".")
}

// Step renders the current state's menu, reads one choice and dispatches it.
// Failures never escape: they are reported and the controller falls back to
// MainMenu, or to Exited when input has ended.
func (c *Controller) Step() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Recovered from panic", "state", c.state.String(), "error", r, "stack", string(debug.Stack()))
			c.fail(fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	var err error
	switch c.state.Kind {
	case MainMenu:
		err = c.mainMenu()
	case CategoryMenu:
		err = c.categoryMenu(c.state.Category)
	default:
		return
	}
	if err != nil {
		c.fail(err)
	}
}

func (c *Controller) fail(err error) {
	if inputClosed(err) {
		c.logger.Debug("Input closed", "state", c.state.String(), "error", err)
		c.transition(State{Kind: Exited})
		return
	}
	c.logger.Error("Menu failure", "state", c.state.String(), "error", err)
	c.out.Error("Error: " + err.Error())
	c.transition(State{Kind: MainMenu})
}

// inputClosed reports whether err means the operator is gone rather than that
// something failed.
func inputClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrInterrupted)
}

func (c *Controller) transition(next State) {
	if next == c.state {
		return
	}
	c.logger.Debug("Transition", "from", c.state.String(), "state", next.String())
	c.state = next
}
