package plugins

import (
	"fmt"
	"os"

	"opshell/internal/config"
	"opshell/pkg/optypes"
)

// BaseCheck implements Label and Description and offers result helpers.
// Plugin checks embed it and provide Run themselves.
type BaseCheck struct {
	Title   string
	Summary string
	// Requires is an optional shell version constraint checked at discovery.
	Requires string
}

// Label returns the name shown in the status table.
func (c BaseCheck) Label() string { return c.Title }

// Description returns the help text.
func (c BaseCheck) Description() string { return c.Summary }

// RequiresShell returns the shell version constraint, if any.
func (c BaseCheck) RequiresShell() string { return c.Requires }

// Pass builds a successful row.
func (c BaseCheck) Pass(message string) optypes.CheckResult {
	return optypes.CheckResult{Successful: true, Message: message}
}

// Fail builds a failed row.
func (c BaseCheck) Fail(message string) optypes.CheckResult {
	return optypes.CheckResult{Successful: false, Message: message}
}

// Check picks the passing or failing message depending on condition.
func (c BaseCheck) Check(condition bool, passMessage, failMessage string) optypes.CheckResult {
	if condition {
		return c.Pass(passMessage)
	}
	return c.Fail(failMessage)
}

// SafeCheck runs fn and turns a panic into a single failed row.
func (c BaseCheck) SafeCheck(fn func() []optypes.CheckResult) (results []optypes.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			results = []optypes.CheckResult{c.Fail(fmt.Sprintf("%s: FAILED - %v", c.Label(), r))}
		}
	}()
	return fn()
}

// FileAccessible reports whether path is a regular file that can be opened for reading.
func (c BaseCheck) FileAccessible(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// DirectoryWritable reports whether path is a directory a temp file can be created in.
func (c BaseCheck) DirectoryWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	f, err := os.CreateTemp(path, ".opshell-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// ConfigSet reports whether a configuration key holds a non-empty value.
func (c BaseCheck) ConfigSet(key string) bool {
	return config.Current().IsSet(key)
}
