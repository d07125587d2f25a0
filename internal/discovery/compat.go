package discovery

import (
	"github.com/charmbracelet/log"

	"opshell/internal/version"
	"opshell/pkg/optypes"
)

// shellCompatible reports whether a discovered plugin accepts the running
// shell version. Plugins without a requirement always do. Manual
// registrations are not checked.
func shellCompatible(l *log.Logger, qualified string, plugin any) bool {
	req, ok := plugin.(optypes.ShellRequirement)
	if !ok || req.RequiresShell() == "" {
		return true
	}

	constraint := req.RequiresShell()
	satisfied, err := version.Satisfies(constraint)
	if err != nil {
		l.Warn("Skipping plugin with invalid shell requirement", "type", qualified, "error", err)
		return false
	}
	if !satisfied {
		l.Warn("Skipping plugin that needs another shell version", "type", qualified, "requires", constraint, "version", version.String())
		return false
	}
	return true
}
