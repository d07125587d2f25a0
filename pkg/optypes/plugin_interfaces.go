// Package optypes defines the plugin contracts and collaborator interfaces for opshell.
// This file contains the three capability interfaces that discovery relies on:
// runnable scripts, categories that group them, and diagnostic system checks.
package optypes

// Script is a named unit of executable work with declared parameters and a
// production-safety flag. Scripts are constructed once by their plugin and
// never mutated afterwards.
type Script interface {
	Name() string
	Description() string
	Tags() []string
	// Category returns the key of the category the script belongs to.
	Category() string
	IsProductionSafe() bool
	Parameters() []Parameter
	// Execute runs the script. The params map carries the collected parameter
	// values plus the reserved SessionKey and VariablesKey entries.
	Execute(params Params) (any, error)
}

// Category is a named, ordered, enable-able grouping of scripts.
// The registry assigns the lookup key; categories do not know their own key.
type Category interface {
	Name() string
	Description() string
	Icon() string
	Color() string
	// SortOrder orders categories ascending; lower values come first.
	SortOrder() int
	IsEnabled() bool
	// Scripts returns the owned scripts in declaration order.
	Scripts() []Script
}

// SystemCheck is a diagnostic probe that yields one or more pass/fail rows.
type SystemCheck interface {
	Label() string
	Description() string
	Run() []CheckResult
}

// ShellRequirement is implemented by plugins that only work with some shell
// versions. RequiresShell returns a semver constraint such as ">= 0.2.0";
// an empty string accepts every version.
type ShellRequirement interface {
	RequiresShell() string
}
