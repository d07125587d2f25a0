package plugins

import (
	"errors"
	"fmt"

	"opshell/pkg/optypes"
)

// ErrMissingParameter is returned by ValidateParameters for absent or empty inputs.
var ErrMissingParameter = errors.New("required parameter is missing or empty")

// ScriptMeta is the immutable metadata of a script.
type ScriptMeta struct {
	Name           string
	Description    string
	Category       string
	ProductionSafe bool
	Parameters     []optypes.Parameter
	Tags           []string
}

// BaseScript implements every optypes.Script method except Execute.
// Plugin scripts embed it and provide Execute themselves.
type BaseScript struct {
	Meta ScriptMeta
}

// Name returns the script identifier.
func (s BaseScript) Name() string { return s.Meta.Name }

// Description returns the one-line description.
func (s BaseScript) Description() string { return s.Meta.Description }

// Category returns the owning category key.
func (s BaseScript) Category() string { return s.Meta.Category }

// IsProductionSafe reports whether the script may run in production without confirmation.
func (s BaseScript) IsProductionSafe() bool { return s.Meta.ProductionSafe }

// Tags returns a copy of the tags.
func (s BaseScript) Tags() []string {
	return append([]string(nil), s.Meta.Tags...)
}

// Parameters returns a copy of the declared parameters in declaration order.
func (s BaseScript) Parameters() []optypes.Parameter {
	return append([]optypes.Parameter(nil), s.Meta.Parameters...)
}

// Success builds the standard success result.
func (s BaseScript) Success(data any, message string) map[string]any {
	if message == "" {
		message = "Script executed successfully"
	}
	return map[string]any{
		"success": true,
		"data":    data,
		"message": message,
	}
}

// Failure builds the standard structured failure result. Scripts return it
// instead of an error when their own validation rejects the input.
func (s BaseScript) Failure(message string, data any) map[string]any {
	return map[string]any{
		"success": false,
		"error":   message,
		"data":    data,
	}
}

// ValidateParameters checks that every name in required is present and non-empty.
func (s BaseScript) ValidateParameters(params optypes.Params, required ...string) error {
	for _, name := range required {
		v, ok := params[name]
		if !ok || v == nil {
			return fmt.Errorf("%w: '%s'", ErrMissingParameter, name)
		}
		if str, isString := v.(string); isString && str == "" {
			return fmt.Errorf("%w: '%s'", ErrMissingParameter, name)
		}
	}
	return nil
}

// Param returns the named parameter or def when it is absent.
func (s BaseScript) Param(params optypes.Params, name string, def any) any {
	if v, ok := params[name]; ok && v != nil {
		return v
	}
	return def
}

// Session returns the live session store handed to Execute.
func (s BaseScript) Session(params optypes.Params) (optypes.SessionStore, bool) {
	return params.Session()
}

// Variables returns the variable snapshot taken when the script was invoked.
func (s BaseScript) Variables(params optypes.Params) map[string]any {
	return params.Variables()
}

// Variable returns a session variable from the invocation snapshot.
func (s BaseScript) Variable(params optypes.Params, name string, def any) any {
	if v, ok := params.Variables()[name]; ok {
		return v
	}
	return def
}

// FuncScript is a script whose behaviour is a plain function.
type FuncScript struct {
	BaseScript
	run func(params optypes.Params) (any, error)
}

// NewScript creates a FuncScript. A nil run yields a script that returns nil.
func NewScript(meta ScriptMeta, run func(params optypes.Params) (any, error)) *FuncScript {
	return &FuncScript{BaseScript: BaseScript{Meta: meta}, run: run}
}

// Execute calls the wrapped function.
func (s *FuncScript) Execute(params optypes.Params) (any, error) {
	if s.run == nil {
		return nil, nil
	}
	return s.run(params)
}
