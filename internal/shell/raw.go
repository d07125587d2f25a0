package shell

import (
	"strings"
)

// RawExecution reads snippets and evaluates them with the session variables in
// scope until the operator types "exit". Non-nil results can be stored.
func (c *Controller) RawExecution() error {
	if c.evaluator == nil {
		c.out.Warning("Raw execution is not available.")
		return nil
	}

	lang := c.evaluator.Language()
	c.out.Println("⚡ Inline " + lang + " evaluation")
	c.out.Note("Session variables are available as globals and through the vars table.")
	c.out.Note(`Type "exit" to return to the main menu.`)

	for {
		code, err := c.prompter.Ask(lang + ">")
		if err != nil {
			return err
		}
		code = strings.TrimSpace(code)
		if strings.EqualFold(code, "exit") {
			return nil
		}
		if code == "" {
			continue
		}

		// Variables are re-read every round so stored results are visible next time.
		result, err := c.evaluator.Eval(code, c.session.Variables())
		if err != nil {
			c.out.Error("Error: " + err.Error())
			continue
		}
		if result == nil {
			c.out.Success("✓ Executed successfully")
			continue
		}

		c.out.Result(result)
		if err := c.offerToStore(result); err != nil {
			return err
		}
	}
}

func (c *Controller) offerToStore(result any) error {
	store, err := c.prompter.Confirm("Store result in a variable?", false)
	if err != nil || !store {
		return err
	}
	name, err := c.prompter.Ask("Variable name")
	if err != nil {
		return err
	}
	name = strings.TrimPrefix(strings.TrimSpace(name), "$")
	if name == "" {
		return nil
	}
	c.session.SetVariable(name, result)
	c.out.Success("✅ Result stored in $" + name)
	return nil
}
