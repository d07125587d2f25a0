package shell

import (
	"fmt"
	"regexp"
	"strings"

	"opshell/internal/logger"
	"opshell/pkg/optypes"
)

// Outcome is the result of one execution attempt.
type Outcome int

// Execution outcomes.
const (
	Succeeded Outcome = iota
	// Failed covers errors, panics and structured failure results.
	Failed
	// Cancelled means the safety gate was declined and nothing ran.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Pause messages.
const (
	pauseContinue   = "Press Enter to continue..."
	pauseReturnMenu = "Press Enter to return to menu..."
)

var unsafeVariableChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// ResultVariable is the session variable a script's result is captured in:
// "result_" plus the lower-cased name with every other character than
// letters, digits and underscores replaced by "_".
func ResultVariable(scriptName string) string {
	return "result_" + unsafeVariableChars.ReplaceAllString(strings.ToLower(scriptName), "_")
}

func (c *Controller) executeInCategory(category optypes.Category, name string) error {
	for _, s := range category.Scripts() {
		if s.Name() == name {
			_, err := c.Execute(s)
			return err
		}
	}
	c.out.Error(fmt.Sprintf("Script '%s' not found.", name))
	return nil
}

// ExecuteByID runs the first indexed script named id.
func (c *Controller) ExecuteByID(id string) (Outcome, error) {
	script, ok := c.scripts.FindByID(id)
	if !ok {
		c.out.Error(fmt.Sprintf("Script with ID '%s' not found.", id))
		return Failed, fmt.Errorf("%w: %s", ErrScriptNotFound, id)
	}
	return c.Execute(script)
}

// RunScript executes one script by name outside the menu loop. It returns an
// error when the script is unknown or its execution failed; a declined safety
// confirmation is not an error.
func (c *Controller) RunScript(name string) error {
	outcome, err := c.ExecuteByID(name)
	if err != nil {
		return err
	}
	if outcome == Failed {
		return fmt.Errorf("%w: %s", ErrExecutionFailed, name)
	}
	return nil
}

// Execute runs script through the safety gate, parameter collection,
// invocation, result capture and history. The returned error is reserved for
// input failures; script failures are reported and yield Failed.
func (c *Controller) Execute(script optypes.Script) (Outcome, error) {
	if !script.IsProductionSafe() && c.settings.confirmationRequired() {
		c.out.Warning("⚠️  This script is not marked as production-safe.")
		proceed, err := c.prompter.Confirm("Do you want to continue anyway?", false)
		if err != nil {
			return Cancelled, err
		}
		if !proceed {
			c.logger.Info("Execution declined at safety gate", "script", script.Name())
			c.out.Info("Operation cancelled.")
			c.out.Pause(pauseContinue)
			return Cancelled, nil
		}
	}

	params, err := c.collectParameters(script)
	if err != nil {
		return Cancelled, err
	}

	c.out.Info("🚀 Executing: " + script.Name())
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	logger.ScriptExecution(script.Name(), names)

	params[optypes.SessionKey] = c.session
	params[optypes.VariablesKey] = c.session.Variables()

	result, execErr := invoke(script, params)
	c.session.AddToHistory(script.Name())

	if execErr != nil {
		c.logger.Error("Script failed", "script", script.Name(), "error", execErr)
		c.out.Error("Script execution failed: " + execErr.Error())
		c.out.Pause(pauseReturnMenu)
		return Failed, nil
	}

	outcome := Succeeded
	if msg, failed := structuredFailure(result); failed {
		outcome = Failed
		c.out.Warning("Script reported a failure: " + msg)
	} else {
		c.out.Success("✅ Script executed successfully!")
	}

	if result != nil {
		c.out.Result(result)
		name := ResultVariable(script.Name())
		c.session.SetVariable(name, result)
		c.out.Note("💾 Result stored in variable: $" + name)
	}

	c.out.Pause(pauseReturnMenu)
	return outcome, nil
}

func (c *Controller) collectParameters(script optypes.Script) (optypes.Params, error) {
	declared := script.Parameters()
	params := make(optypes.Params, len(declared)+2)
	if len(declared) == 0 {
		return params, nil
	}

	c.out.Println("📝 This script requires parameters:")
	for _, p := range declared {
		value, err := c.prompter.Ask(p.Prompt())
		if err != nil {
			return nil, err
		}
		params[p.Name] = value
	}
	return params, nil
}

// invoke calls Execute, converting a panic into an error.
func invoke(script optypes.Script, params optypes.Params) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return script.Execute(params)
}

// structuredFailure recognises the {success: false, error: ...} result shape.
func structuredFailure(result any) (string, bool) {
	m, ok := result.(map[string]any)
	if !ok {
		return "", false
	}
	success, ok := m["success"].(bool)
	if !ok || success {
		return "", false
	}
	return fmt.Sprint(m["error"]), true
}
