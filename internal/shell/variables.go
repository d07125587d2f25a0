package shell

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"opshell/internal/output"
	"opshell/pkg/optypes"
)

// Variable manager action keys.
const (
	VarList   = "list"
	VarView   = "view"
	VarSet    = "set"
	VarDelete = "delete"
	VarClear  = "clear"
)

// VariableManager offers list, view, set, delete and clear over the session
// variables. It never changes the controller state.
func (c *Controller) VariableManager() error {
	c.out.Println("💾 Variable Manager")

	if c.session.VariableCount() == 0 {
		c.out.Info("No variables stored in this session.")
		c.out.Note("Variables are automatically created when scripts return results.")
		c.out.Pause(pauseContinue)
		return nil
	}

	choice, err := c.prompter.Select("Variable management options:", []optypes.Option{
		{Key: VarList, Display: "📋 List all variables"},
		{Key: VarView, Display: "👁️ View variable content"},
		{Key: VarSet, Display: "✏️ Set new variable"},
		{Key: VarDelete, Display: "🗑️ Delete variable"},
		{Key: VarClear, Display: "🧹 Clear all variables"},
		{Key: ActionBack, Display: "← Back to main menu"},
	})
	if err != nil {
		return err
	}

	switch choice {
	case VarList:
		c.listVariables()
		return nil
	case VarView:
		return c.viewVariable()
	case VarSet:
		return c.setVariable()
	case VarDelete:
		return c.deleteVariable()
	case VarClear:
		return c.clearVariables()
	default:
		return nil
	}
}

func (c *Controller) listVariables() {
	rows := make([][]string, 0, c.session.VariableCount())
	vars := c.session.Variables()
	for _, name := range c.session.VariableNames() {
		value := vars[name]
		rows = append(rows, []string{"$" + name, output.TypeName(value), output.Preview(value)})
	}
	c.out.Println("📋 Session Variables:")
	c.out.Table([]string{"Variable", "Type", "Preview"}, rows)
	c.out.Pause(pauseContinue)
}

// variableOptions filters variable names by a case-insensitive substring.
func (c *Controller) variableOptions(withType bool) optypes.OptionsProvider {
	return func(query string) []optypes.Option {
		q := strings.ToLower(query)
		vars := c.session.Variables()
		var options []optypes.Option
		for _, name := range c.session.VariableNames() {
			if !strings.Contains(strings.ToLower(name), q) {
				continue
			}
			display := "$" + name
			if withType {
				display += " (" + output.TypeName(vars[name]) + ")"
			}
			options = append(options, optypes.Option{Key: name, Display: display})
		}
		return options
	}
}

func (c *Controller) viewVariable() error {
	name, chosen, err := c.prompter.Search("Select variable to view:", "Type variable name...", c.variableOptions(true))
	if err != nil || !chosen {
		return err
	}
	value, ok := c.session.Variable(name)
	if !ok {
		c.out.Error(fmt.Sprintf("%s: $%s", ErrVariableNotFound, name))
		return nil
	}
	c.out.Println("Variable: $" + name)
	c.out.Result(value)
	c.out.Pause(pauseContinue)
	return nil
}

func (c *Controller) setVariable() error {
	name, err := c.prompter.Ask("Variable name (without $)")
	if err != nil {
		return err
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "$")
	if name == "" {
		c.out.Warning("Variable name cannot be empty.")
		return nil
	}

	raw, err := c.prompter.Ask("Variable value (JSON or simple value)")
	if err != nil {
		return err
	}

	c.session.SetVariable(name, ParseValue(raw))
	c.out.Success(fmt.Sprintf("✅ Variable $%s set successfully!", name))
	c.out.Pause(pauseContinue)
	return nil
}

// ParseValue decodes raw as JSON when it is valid JSON and keeps it as a
// string otherwise. JSON numbers become float64 like encoding/json does.
func ParseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return raw
	}
	return gjson.Parse(trimmed).Value()
}

func (c *Controller) deleteVariable() error {
	name, chosen, err := c.prompter.Search("Select variable to delete:", "Type variable name...", c.variableOptions(false))
	if err != nil {
		return err
	}
	if chosen {
		if !c.session.HasVariable(name) {
			c.out.Error(fmt.Sprintf("%s: $%s", ErrVariableNotFound, name))
			return nil
		}
		confirmed, err := c.prompter.Confirm(fmt.Sprintf("Are you sure you want to delete $%s?", name), false)
		if err != nil {
			return err
		}
		if confirmed {
			c.session.RemoveVariable(name)
			c.out.Success(fmt.Sprintf("✅ Variable $%s deleted!", name))
		}
	}
	c.out.Pause(pauseContinue)
	return nil
}

func (c *Controller) clearVariables() error {
	confirmed, err := c.prompter.Confirm("Are you sure you want to clear ALL variables?", false)
	if err != nil {
		return err
	}
	if confirmed {
		c.session.ClearVariables()
		c.out.Success("✅ All variables cleared!")
	}
	c.out.Pause(pauseContinue)
	return nil
}
