// Package session provides the in-memory state of one opshell run: operator
// variables, a bounded command history and an auxiliary context map.
// Nothing here is persisted; the store lives exactly as long as the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"opshell/pkg/optypes"
)

// MaxHistorySize bounds the command history; the oldest entries are evicted first.
const MaxHistorySize = 100

// Store holds variables, history and context. Each namespace is guarded by its
// own lock, so there is no atomicity across namespaces.
type Store struct {
	id        string
	createdAt time.Time

	variables *orderedMap
	context   *orderedMap

	historyMu sync.RWMutex
	history   []string
}

var _ optypes.SessionStore = (*Store)(nil)

// New creates an empty store with a fresh session id.
func New() *Store {
	return &Store{
		id:        uuid.New().String(),
		createdAt: time.Now(),
		variables: newOrderedMap(),
		context:   newOrderedMap(),
		history:   make([]string, 0),
	}
}

// ID returns the session identifier.
func (s *Store) ID() string { return s.id }

// CreatedAt returns when the session started.
func (s *Store) CreatedAt() time.Time { return s.createdAt }

// SetVariable creates or overwrites a variable. Overwriting keeps its position.
func (s *Store) SetVariable(name string, value any) {
	s.variables.set(name, value)
}

// Variable returns a variable value and whether it exists.
func (s *Store) Variable(name string) (any, bool) {
	return s.variables.get(name)
}

// HasVariable reports whether name is set, even to nil.
func (s *Store) HasVariable(name string) bool {
	_, ok := s.variables.get(name)
	return ok
}

// RemoveVariable deletes a variable; removing an unknown name is a no-op.
func (s *Store) RemoveVariable(name string) {
	s.variables.remove(name)
}

// Variables returns a snapshot copy of all variables.
func (s *Store) Variables() map[string]any {
	return s.variables.snapshot()
}

// VariableNames returns variable names in insertion order.
func (s *Store) VariableNames() []string {
	return s.variables.keys()
}

// VariableCount returns the number of variables.
func (s *Store) VariableCount() int {
	return s.variables.len()
}

// ClearVariables removes every variable.
func (s *Store) ClearVariables() {
	s.variables.clear()
}

// AddToHistory appends command and evicts the oldest entry while the history
// is longer than MaxHistorySize.
func (s *Store) AddToHistory(command string) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append(s.history, command)
	for len(s.history) > MaxHistorySize {
		s.history = s.history[1:]
	}
}

// History returns a copy of the history, oldest first.
func (s *Store) History() []string {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory empties the history.
func (s *Store) ClearHistory() {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	s.history = make([]string, 0)
}

// SetContext stores an auxiliary value used between shell operations.
func (s *Store) SetContext(key string, value any) {
	s.context.set(key, value)
}

// Context returns an auxiliary value and whether it exists.
func (s *Store) Context(key string) (any, bool) {
	return s.context.get(key)
}

// AllContext returns a snapshot copy of the context map.
func (s *Store) AllContext() map[string]any {
	return s.context.snapshot()
}

// ClearContext empties the context map.
func (s *Store) ClearContext() {
	s.context.clear()
}

// Reset clears history, variables and context.
func (s *Store) Reset() {
	s.ClearHistory()
	s.ClearVariables()
	s.ClearContext()
}
