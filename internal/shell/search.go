package shell

import (
	"errors"
	"fmt"

	"opshell/internal/plugins"
	"opshell/pkg/optypes"
)

// MaxSearchResults caps the options offered by the global search.
const MaxSearchResults = 15

// GlobalSearchOptions offers the first MaxSearchResults index matches for query.
func (c *Controller) GlobalSearchOptions(query string) []optypes.Option {
	matches := c.scripts.Search(query)
	if len(matches) > MaxSearchResults {
		matches = matches[:MaxSearchResults]
	}
	options := make([]optypes.Option, 0, len(matches))
	for _, s := range matches {
		options = append(options, optypes.Option{
			Key:     s.Name(),
			Display: fmt.Sprintf("[%s] → %s - %s", s.Category(), s.Name(), s.Description()),
		})
	}
	return options
}

// SearchScripts searches every script by name and runs the chosen one.
func (c *Controller) SearchScripts() error {
	id, chosen, err := c.prompter.Search(
		"Search for scripts and operations",
		`E.g. "user cleanup", "cache clear", "test data"`,
		c.GlobalSearchOptions,
	)
	if err != nil || !chosen {
		return err
	}
	if _, err := c.ExecuteByID(id); err != nil && !errors.Is(err, ErrScriptNotFound) {
		return err
	}
	return nil
}

// SearchCategory filters the category's scripts by name or description,
// ignoring case, and runs the chosen one.
func (c *Controller) SearchCategory(category optypes.Category) error {
	scripts := category.Scripts()
	provider := func(query string) []optypes.Option {
		matches := plugins.FilterScripts(scripts, query)
		options := make([]optypes.Option, 0, len(matches))
		for _, s := range matches {
			options = append(options, optypes.Option{
				Key:     s.Name(),
				Display: fmt.Sprintf("%s - %s", s.Name(), s.Description()),
			})
		}
		return options
	}

	name, chosen, err := c.prompter.Search("Search scripts in "+category.Name(), "Type to filter scripts...", provider)
	if err != nil || !chosen {
		return err
	}
	return c.executeInCategory(category, name)
}
