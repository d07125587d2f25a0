// Package checks provides the built-in system checks shown on the status screen.
// Importing the package registers them under plugins.ChecksNamespace.
package checks

import (
	"fmt"
	"os"

	"opshell/internal/config"
	"opshell/internal/plugins"
	"opshell/pkg/optypes"
)

// AppKeyCheck verifies that an application key is configured.
type AppKeyCheck struct {
	plugins.BaseCheck
}

// NewAppKeyCheck creates the application key check.
func NewAppKeyCheck() *AppKeyCheck {
	return &AppKeyCheck{BaseCheck: plugins.BaseCheck{
		Title:   "Application Key",
		Summary: "Verifies that app.key is configured",
	}}
}

// Run reports whether app.key holds a value.
func (c *AppKeyCheck) Run() []optypes.CheckResult {
	return []optypes.CheckResult{c.Check(
		c.ConfigSet(config.KeyAppKey),
		"The application key is set.",
		"The application key is not set. Set app.key in opshell.yaml or export APP_KEY.",
	)}
}

// WorkingDirCheck verifies that the current directory exists and is writable.
type WorkingDirCheck struct {
	plugins.BaseCheck
	getwd func() (string, error)
}

// NewWorkingDirCheck creates the working directory check.
func NewWorkingDirCheck() *WorkingDirCheck {
	return &WorkingDirCheck{
		BaseCheck: plugins.BaseCheck{
			Title:   "Working Directory",
			Summary: "Verifies that scripts can write to the current directory",
		},
		getwd: os.Getwd,
	}
}

// Run resolves the working directory and probes it for writes.
func (c *WorkingDirCheck) Run() []optypes.CheckResult {
	return c.SafeCheck(func() []optypes.CheckResult {
		dir, err := c.getwd()
		if err != nil {
			return []optypes.CheckResult{c.Fail(fmt.Sprintf("Cannot resolve the working directory: %v", err))}
		}
		return []optypes.CheckResult{c.Check(
			c.DirectoryWritable(dir),
			"Working directory is writable: "+dir,
			"Working directory is not writable: "+dir,
		)}
	})
}

// TempDirCheck verifies that the temporary directory is writable.
type TempDirCheck struct {
	plugins.BaseCheck
	dir func() string
}

// NewTempDirCheck creates the temporary directory check.
func NewTempDirCheck() *TempDirCheck {
	return &TempDirCheck{
		BaseCheck: plugins.BaseCheck{
			Title:   "Temporary Directory",
			Summary: "Verifies that the temporary directory accepts new files",
		},
		dir: os.TempDir,
	}
}

// Run probes the temporary directory for writes.
func (c *TempDirCheck) Run() []optypes.CheckResult {
	dir := c.dir()
	return []optypes.CheckResult{c.Check(
		c.DirectoryWritable(dir),
		"Temporary directory is writable: "+dir,
		"Temporary directory is not writable: "+dir,
	)}
}

func init() {
	register := map[string]plugins.Factory{
		"AppKeyCheck":     func() any { return NewAppKeyCheck() },
		"WorkingDirCheck": func() any { return NewWorkingDirCheck() },
		"TempDirCheck":    func() any { return NewTempDirCheck() },
	}
	for _, name := range []string{"AppKeyCheck", "WorkingDirCheck", "TempDirCheck"} {
		if err := plugins.GlobalRegistry.Register(plugins.ChecksNamespace, name, register[name]); err != nil {
			panic(fmt.Sprintf("failed to register %s: %v", name, err))
		}
	}
}
