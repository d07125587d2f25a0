package shell

import (
	"fmt"

	"opshell/pkg/optypes"
)

// Main menu action keys.
const (
	ActionSearch       = "search"
	ActionRawExecution = "raw-exec"
	ActionVariables    = "variables"
	ActionSystemStatus = "system-status"
	ActionHistory      = "history"
	ActionExit         = "exit"
)

// Category menu action keys.
const (
	ActionSearchCategory = "search-category"
	ActionBack           = "back"
)

// Safety markers shown before script names.
const (
	SafeMarker   = "✅"
	UnsafeMarker = "⚠️"
)

const mainMenuLabel = "What would you like to do?"

func (c *Controller) quickActions() []optypes.Option {
	var actions []optypes.Option
	f := c.settings.Features
	if f.Search {
		actions = append(actions, optypes.Option{Key: ActionSearch, Display: "🔍 Search Scripts"})
	}
	if f.RawExecution && c.evaluator != nil {
		actions = append(actions, optypes.Option{Key: ActionRawExecution, Display: "⚡ Evaluate " + c.evaluator.Language()})
	}
	if f.VariableManager {
		actions = append(actions, optypes.Option{Key: ActionVariables, Display: "💾 Manage Variables"})
	}
	if f.SystemStatus {
		actions = append(actions, optypes.Option{Key: ActionSystemStatus, Display: "📊 System Status"})
	}
	return append(actions,
		optypes.Option{Key: ActionHistory, Display: "📜 Command History"},
		optypes.Option{Key: ActionExit, Display: "❌ Exit " + c.settings.AppName},
	)
}

// MainMenuOptions lists the enabled categories in sort order followed by the
// enabled quick actions. A category whose key equals a quick action key is left out.
func (c *Controller) MainMenuOptions() []optypes.Option {
	actions := c.quickActions()
	reserved := make(map[string]bool, len(actions))
	for _, a := range actions {
		reserved[a.Key] = true
	}

	var options []optypes.Option
	for _, entry := range c.categories.Sorted() {
		if !entry.Category.IsEnabled() {
			continue
		}
		if reserved[entry.Key] {
			c.logger.Warn("Category key shadows a menu action", "category", entry.Key)
			continue
		}
		cat := entry.Category
		options = append(options, optypes.Option{
			Key:     entry.Key,
			Display: fmt.Sprintf("[Categories] %s %s (%d scripts)", cat.Icon(), cat.Name(), len(cat.Scripts())),
		})
	}
	for _, a := range actions {
		options = append(options, optypes.Option{Key: a.Key, Display: "[Quick Actions] " + a.Display})
	}
	return options
}

func (c *Controller) mainMenu() error {
	choice, err := c.prompter.Select(mainMenuLabel, c.MainMenuOptions())
	if err != nil {
		return err
	}

	switch choice {
	case ActionSearch:
		return c.SearchScripts()
	case ActionRawExecution:
		return c.RawExecution()
	case ActionVariables:
		return c.VariableManager()
	case ActionSystemStatus:
		c.SystemStatus()
		return nil
	case ActionHistory:
		c.ShowHistory()
		return nil
	case ActionExit:
		c.transition(State{Kind: Exited})
		return nil
	default:
		c.transition(State{Kind: CategoryMenu, Category: choice})
		return nil
	}
}

// CategoryMenuOptions lists the category's scripts with their safety marker
// followed by the in-category search and back actions.
func CategoryMenuOptions(category optypes.Category) []optypes.Option {
	var options []optypes.Option
	for _, s := range category.Scripts() {
		marker := UnsafeMarker
		if s.IsProductionSafe() {
			marker = SafeMarker
		}
		options = append(options, optypes.Option{
			Key:     s.Name(),
			Display: fmt.Sprintf("%s %s - %s", marker, s.Name(), s.Description()),
		})
	}
	return append(options,
		optypes.Option{Key: ActionSearchCategory, Display: "🔍 Search in this category"},
		optypes.Option{Key: ActionBack, Display: "← Back to main menu"},
	)
}

func (c *Controller) categoryMenu(key string) error {
	category, ok := c.categories.Get(key)
	if !ok {
		c.out.Error(fmt.Sprintf("Category '%s' not found.", key))
		c.logger.Warn("Unknown category", "category", key, "error", ErrCategoryNotFound)
		c.transition(State{Kind: MainMenu})
		return nil
	}

	c.out.Header(category.Icon()+" "+category.Name(), category.Description())

	choice, err := c.prompter.Select("Select a script to execute:", CategoryMenuOptions(category))
	if err != nil {
		return err
	}

	switch choice {
	case ActionSearchCategory:
		return c.SearchCategory(category)
	case ActionBack:
		c.transition(State{Kind: MainMenu})
		return nil
	default:
		return c.executeInCategory(category, choice)
	}
}
