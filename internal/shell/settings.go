package shell

import (
	"opshell/internal/config"
	"opshell/internal/version"
)

// Features gates the optional main menu actions.
type Features struct {
	Search          bool
	RawExecution    bool
	VariableManager bool
	SystemStatus    bool
}

// Settings is the configuration the controller reads.
type Settings struct {
	AppName     string
	Environment string
	Version     string
	// Build is "development", "prerelease" or "release".
	Build    string
	Title    string
	Subtitle    string

	// Production is the environment predicate consulted by the safety gate.
	Production bool
	// SafeMode mirrors production_safety.safe_mode.
	SafeMode bool
	// SafeModeOverride is set by the --safe-mode flag and skips the confirmation.
	SafeModeOverride bool

	Features Features
}

// DefaultSettings enables every feature outside production.
func DefaultSettings() Settings {
	return Settings{
		AppName:     "opshell",
		Environment: "local",
		Version:     version.String(),
		Build:       version.Kind(),
		Title:       "🚀 opshell",
		Subtitle:    "Interactive operations shell",
		SafeMode:    true,
		Features: Features{
			Search:          true,
			RawExecution:    true,
			VariableManager: true,
			SystemStatus:    true,
		},
	}
}

// SettingsFromConfig reads Settings from cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	title, subtitle := cfg.Branding()
	return Settings{
		AppName:     cfg.AppName(),
		Environment: cfg.Environment(),
		Version:     version.String(),
		Build:       version.Kind(),
		Title:       title,
		Subtitle:    subtitle,
		Production:  cfg.IsProduction(),
		SafeMode:    cfg.SafeMode(),
		Features: Features{
			Search:          cfg.FeatureEnabled("search"),
			RawExecution:    cfg.RawExecutionEnabled(),
			VariableManager: cfg.FeatureEnabled("variable_manager"),
			SystemStatus:    cfg.FeatureEnabled("system_status"),
		},
	}
}

// confirmationRequired reports whether the safety gate applies to an unsafe script.
func (s Settings) confirmationRequired() bool {
	return s.Production && s.SafeMode && !s.SafeModeOverride
}
