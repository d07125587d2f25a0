package optypes

import "fmt"

// Reserved keys merged into the parameters handed to Script.Execute.
const (
	// SessionKey holds the live SessionStore.
	SessionKey = "_session"
	// VariablesKey holds a snapshot of all session variables at invocation time.
	VariablesKey = "_variables"
)

// Parameter describes a single input a script asks the operator for.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"` // hint only, never enforced
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Prompt returns the text shown when collecting this parameter.
func (p Parameter) Prompt() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

// CheckResult is one immutable row produced by SystemCheck.Run.
type CheckResult struct {
	Successful bool   `json:"successful"`
	Message    string `json:"message"`
}

// Params is the execution context passed to Script.Execute.
type Params map[string]any

// Get returns the raw value stored under name.
func (p Params) Get(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

// String returns the parameter formatted as a string, or def when it is absent or nil.
func (p Params) String(name string, def string) string {
	v, ok := p[name]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Session returns the live session store, if the caller supplied one.
func (p Params) Session() (SessionStore, bool) {
	s, ok := p[SessionKey].(SessionStore)
	return s, ok
}

// Variables returns the session variable snapshot, never nil.
func (p Params) Variables() map[string]any {
	if vars, ok := p[VariablesKey].(map[string]any); ok {
		return vars
	}
	return map[string]any{}
}

// SessionStore is the part of the session that scripts may use.
type SessionStore interface {
	SetVariable(name string, value any)
	Variable(name string) (any, bool)
	HasVariable(name string) bool
	RemoveVariable(name string)
	SetContext(key string, value any)
	Context(key string) (any, bool)
}
