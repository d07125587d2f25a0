// Package examples ships a sample category, script and system check showing
// how plugins embed the base kits. Importing it registers them with
// plugins.GlobalRegistry.
package examples

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"opshell/internal/config"
	"opshell/internal/plugins"
	"opshell/pkg/optypes"
)

// LastUserVariable is the session variable example-script writes to.
const LastUserVariable = "last_user_processed"

// MinShellVersion is the oldest shell the examples run against.
const MinShellVersion = ">= 0.1.0-0"

// heapWarnBytes is the heap size above which ExampleCheck reports a failure.
const heapWarnBytes = 512 << 20

// ExamplesCategory groups the example scripts.
type ExamplesCategory struct {
	*plugins.BaseCategory
}

// NewExamplesCategory creates the category; its scripts load on first use.
func NewExamplesCategory() *ExamplesCategory {
	return &ExamplesCategory{BaseCategory: plugins.NewBaseCategory(plugins.CategoryMeta{
		Name:        "Examples",
		Description: "Example scripts demonstrating opshell plugins",
		Icon:        "📚",
		Color:       "green",
		SortOrder:   10,
		Requires:    MinShellVersion,
	}, func(c *plugins.BaseCategory) {
		c.AddScript(NewExampleScript())
	})}
}

// Description adds the example and tutorial counts to the category blurb.
func (c *ExamplesCategory) Description() string {
	return fmt.Sprintf("%s (%s, %s)", c.BaseCategory.Description(),
		english.Plural(c.ExampleCount(), "example", ""),
		english.Plural(len(c.TutorialScripts()), "tutorial", ""))
}

// ExampleCount returns how many scripts are tagged "example".
func (c *ExamplesCategory) ExampleCount() int {
	return len(c.ScriptsByTag("example"))
}

// TutorialScripts returns the scripts tagged "tutorial".
func (c *ExamplesCategory) TutorialScripts() []optypes.Script {
	return c.ScriptsByTag("tutorial")
}

// ExampleScript looks up a user and remembers it in the session.
type ExampleScript struct {
	plugins.BaseScript
}

// NewExampleScript creates example-script.
func NewExampleScript() *ExampleScript {
	return &ExampleScript{BaseScript: plugins.BaseScript{Meta: plugins.ScriptMeta{
		Name:           "example-script",
		Description:    "An example script demonstrating the script helpers",
		Category:       "examples",
		ProductionSafe: true,
		Tags:           []string{"example", "demo", "tutorial"},
		Parameters: []optypes.Parameter{
			{Name: "user_id", Label: "User ID", Type: "string", Required: true, Description: "The ID of the user to process"},
			{Name: "action", Label: "Action to perform", Type: "string", Description: "The action to perform (default: info)"},
		},
	}}}
}

// Execute validates user_id and returns the simulated user record.
// Validation problems are returned as a structured failure, not an error.
func (s *ExampleScript) Execute(params optypes.Params) (any, error) {
	if err := s.ValidateParameters(params, "user_id"); err != nil {
		return s.Failure("Validation failed: "+err.Error(), nil), nil
	}

	userID := params.String("user_id", "")
	action := params.String("action", "")
	if action == "" {
		action = "info"
	}

	user := map[string]any{
		"id":     userID,
		"name":   "John Doe",
		"email":  "john@example.com",
		"action": action,
	}
	if sess, ok := s.Session(params); ok {
		sess.SetVariable(LastUserVariable, user)
	}

	return s.Success(user, fmt.Sprintf("Successfully processed user %s with action '%s'", userID, action)), nil
}

// ExampleCheck demonstrates the check helpers against the running process.
type ExampleCheck struct {
	plugins.BaseCheck
}

// NewExampleCheck creates the example check.
func NewExampleCheck() *ExampleCheck {
	return &ExampleCheck{BaseCheck: plugins.BaseCheck{
		Title:   "Example System Check",
		Summary: "An example system check demonstrating the check helpers",
	}}
}

// Run reports on configuration, the config file, the temp dir and heap usage.
func (c *ExampleCheck) Run() []optypes.CheckResult {
	return c.SafeCheck(func() []optypes.CheckResult {
		results := []optypes.CheckResult{
			c.Check(c.ConfigSet(config.KeyAppKey), "Application key is configured", "Application key is not set"),
		}

		if file := config.Current().Viper().ConfigFileUsed(); file != "" {
			results = append(results, c.Check(c.FileAccessible(file),
				"Config file is readable: "+file,
				"Config file is not readable: "+file))
		} else {
			results = append(results, c.Pass("No config file in use, defaults apply"))
		}

		tmp := os.TempDir()
		results = append(results, c.Check(c.DirectoryWritable(tmp),
			"Temporary directory is writable",
			"Temporary directory is not writable: "+tmp))

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		heap := humanize.IBytes(mem.HeapAlloc)
		results = append(results, c.Check(mem.HeapAlloc < heapWarnBytes,
			fmt.Sprintf("Heap usage is normal (%s)", heap),
			fmt.Sprintf("Heap usage is high (%s)", heap)))

		return results
	})
}

func init() {
	if err := plugins.GlobalRegistry.Register(plugins.CategoriesNamespace, "ExamplesCategory", func() any {
		return NewExamplesCategory()
	}); err != nil {
		panic(fmt.Sprintf("failed to register examples category: %v", err))
	}
	if err := plugins.GlobalRegistry.Register(plugins.ChecksNamespace, "ExampleCheck", func() any {
		return NewExampleCheck()
	}); err != nil {
		panic(fmt.Sprintf("failed to register example check: %v", err))
	}
}
