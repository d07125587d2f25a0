// Package testutils provides fakes for opshell's plugin contracts and collaborators.
package testutils

import (
	"opshell/internal/plugins"
	"opshell/pkg/optypes"
)

// FakeScript is a script that records its invocations.
type FakeScript struct {
	plugins.BaseScript

	// Result and Err are returned from Execute.
	Result any
	Err    error
	// Panic, when non-nil, is raised from Execute.
	Panic any

	Calls []optypes.Params
}

// NewFakeScript creates a script in category with the given safety flag.
func NewFakeScript(name, category string, productionSafe bool, params ...optypes.Parameter) *FakeScript {
	return &FakeScript{
		BaseScript: plugins.BaseScript{Meta: plugins.ScriptMeta{
			Name:           name,
			Description:    "Fake script " + name,
			Category:       category,
			ProductionSafe: productionSafe,
			Parameters:     params,
		}},
	}
}

// Execute records params and returns the configured outcome.
func (s *FakeScript) Execute(params optypes.Params) (any, error) {
	s.Calls = append(s.Calls, params)
	if s.Panic != nil {
		panic(s.Panic)
	}
	return s.Result, s.Err
}

// Invoked reports whether Execute ran at least once.
func (s *FakeScript) Invoked() bool {
	return len(s.Calls) > 0
}

// FakeCategory is a category with fixed metadata and scripts.
type FakeCategory struct {
	*plugins.BaseCategory
}

// NewFakeCategory creates an enabled category with the given sort order.
func NewFakeCategory(name string, sortOrder int, scripts ...optypes.Script) *FakeCategory {
	return NewFakeCategoryWith(plugins.CategoryMeta{
		Name:        name,
		Description: "Fake category " + name,
		SortOrder:   sortOrder,
	}, scripts...)
}

// NewFakeCategoryWith creates a category from explicit metadata.
func NewFakeCategoryWith(meta plugins.CategoryMeta, scripts ...optypes.Script) *FakeCategory {
	return &FakeCategory{
		BaseCategory: plugins.NewBaseCategory(meta, func(c *plugins.BaseCategory) {
			c.AddScripts(scripts...)
		}),
	}
}

// FakeCheck is a system check returning fixed rows.
type FakeCheck struct {
	plugins.BaseCheck
	Results []optypes.CheckResult
	Panic   any
}

// NewFakeCheck creates a check labelled label returning results.
func NewFakeCheck(label string, results ...optypes.CheckResult) *FakeCheck {
	return &FakeCheck{
		BaseCheck: plugins.BaseCheck{Title: label, Summary: "Fake check " + label},
		Results:   results,
	}
}

// Run returns the configured rows.
func (c *FakeCheck) Run() []optypes.CheckResult {
	if c.Panic != nil {
		panic(c.Panic)
	}
	return c.Results
}
