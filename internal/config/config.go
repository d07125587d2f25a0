// Package config loads opshell settings from defaults, an optional YAML file,
// a .env file and OPSHELL_* environment variables.
//
// Precedence, highest first: values set explicitly (bound CLI flags), the
// environment, the config file, the .env file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"opshell/internal/logger"
)

// EnvPrefix prefixes every environment variable opshell reads.
const EnvPrefix = "OPSHELL"

// Configuration keys.
const (
	KeyAppEnv                = "app.env"
	KeyAppName               = "app.name"
	KeyAppKey                = "app.key"
	KeyFeatureSearch         = "features.search"
	KeyFeatureRawExecution   = "features.raw_execution"
	KeyFeatureRawPHP         = "features.raw_php"
	KeyFeatureVariables      = "features.variable_manager"
	KeyFeatureSystemStatus   = "features.system_status"
	KeySafeMode              = "production_safety.safe_mode"
	KeyDiscoverySource       = "discovery.source"
	KeyCategoriesPath        = "discovery.categories_path"
	KeyChecksPath            = "discovery.checks_path"
	KeyCategoriesNamespace   = "discovery.categories_namespace"
	KeyChecksNamespace       = "discovery.checks_namespace"
	KeyManifest              = "discovery.manifest"
	KeySystemChecksDiscovery = "discovery.system_checks_discovery"
	KeySystemChecks          = "system_checks"
	KeyBrandingTitle         = "branding.title"
	KeyBrandingSubtitle      = "branding.subtitle"
)

// Discovery source kinds accepted by discovery.source.
const (
	SourceRegistry  = "registry"
	SourceDirectory = "directory"
	SourceManifest  = "manifest"
)

// ProductionEnv is the app.env value that enables production safety.
const ProductionEnv = "production"

// Config is a typed view over a viper instance.
type Config struct {
	v *viper.Viper
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. When empty, opshell.yaml is searched
	// in the working directory and $HOME/.config/opshell.
	File string
	// DotEnv is the .env path; empty means ".env" in the working directory.
	DotEnv string
	// SkipDotEnv disables .env loading.
	SkipDotEnv bool
}

// New returns a Config holding only the built-in defaults and environment bindings.
func New() *Config {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain APP_* variables are honoured for deployments that already export them.
	_ = v.BindEnv(KeyAppEnv, EnvPrefix+"_APP_ENV", "APP_ENV")
	_ = v.BindEnv(KeyAppKey, EnvPrefix+"_APP_KEY", "APP_KEY")
	_ = v.BindEnv(KeyAppName, EnvPrefix+"_APP_NAME", "APP_NAME")

	return &Config{v: v}
}

// Load builds a Config from defaults, the .env file, the config file and the environment.
func Load(opts Options) (*Config, error) {
	c := New()

	if !opts.SkipDotEnv {
		if err := c.loadDotEnv(opts.DotEnv); err != nil {
			return nil, err
		}
	}

	if opts.File != "" {
		c.v.SetConfigFile(opts.File)
	} else {
		c.v.SetConfigName("opshell")
		c.v.SetConfigType("yaml")
		c.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			c.v.AddConfigPath(filepath.Join(home, ".config", "opshell"))
		}
	}

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logger.Debug("No config file found, using defaults")
	} else {
		logger.Debug("Loaded config file", "path", c.v.ConfigFileUsed())
	}

	return c, nil
}

// loadDotEnv layers .env values just above the defaults, so the real
// environment and the config file still win.
func (c *Config) loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	// raw_php has no default, so it is not among AllKeys.
	for _, key := range append(c.v.AllKeys(), KeyFeatureRawPHP) {
		for _, name := range envNames(key) {
			if value, ok := envMap[name]; ok {
				c.v.SetDefault(key, value)
				break
			}
		}
	}
	logger.Debug("Loaded .env file", "path", path, "entries", len(envMap))
	return nil
}

// envNames lists the environment variable names consulted for key.
func envNames(key string) []string {
	name := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	names := []string{EnvPrefix + "_" + name}
	if strings.HasPrefix(key, "app.") {
		names = append(names, name)
	}
	return names
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAppEnv, "local")
	v.SetDefault(KeyAppName, "opshell")
	v.SetDefault(KeyAppKey, "")

	v.SetDefault(KeyFeatureSearch, true)
	v.SetDefault(KeyFeatureRawExecution, true)
	v.SetDefault(KeyFeatureVariables, true)
	v.SetDefault(KeyFeatureSystemStatus, true)

	v.SetDefault(KeySafeMode, true)

	v.SetDefault(KeyDiscoverySource, SourceRegistry)
	v.SetDefault(KeyCategoriesPath, "")
	v.SetDefault(KeyChecksPath, "")
	v.SetDefault(KeyCategoriesNamespace, "app/categories")
	v.SetDefault(KeyChecksNamespace, "app/checks")
	v.SetDefault(KeyManifest, "")
	v.SetDefault(KeySystemChecksDiscovery, true)
	v.SetDefault(KeySystemChecks, []string{})

	v.SetDefault(KeyBrandingTitle, "🚀 opshell")
	v.SetDefault(KeyBrandingSubtitle, "Interactive operations shell")
}

// Viper exposes the underlying instance, e.g. for binding CLI flags.
func (c *Config) Viper() *viper.Viper { return c.v }

// Set overrides a key at the highest precedence.
func (c *Config) Set(key string, value any) { c.v.Set(key, value) }

// Get returns the raw value of key.
func (c *Config) Get(key string) any { return c.v.Get(key) }

// GetString returns key as a string.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// GetBool returns key as a bool.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// IsSet reports whether key holds a non-empty value.
func (c *Config) IsSet(key string) bool {
	value := c.v.Get(key)
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return s != ""
	}
	return true
}

// Environment returns app.env.
func (c *Config) Environment() string { return c.v.GetString(KeyAppEnv) }

// IsProduction reports whether app.env is "production", ignoring case.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment()), ProductionEnv)
}

// AppName returns app.name.
func (c *Config) AppName() string { return c.v.GetString(KeyAppName) }

// FeatureEnabled reports whether a features.<name> toggle is on.
// Unknown features default to enabled.
func (c *Config) FeatureEnabled(name string) bool {
	key := "features." + name
	if key == KeyFeatureRawExecution || key == KeyFeatureRawPHP {
		return c.RawExecutionEnabled()
	}
	if !c.v.IsSet(key) {
		return true
	}
	return c.v.GetBool(key)
}

// RawExecutionEnabled reports whether the raw evaluation action is offered.
// features.raw_php is the historical name of the toggle; setting either key
// to false disables it.
func (c *Config) RawExecutionEnabled() bool {
	if c.v.IsSet(KeyFeatureRawPHP) && !c.v.GetBool(KeyFeatureRawPHP) {
		return false
	}
	return c.v.GetBool(KeyFeatureRawExecution)
}

// SafeMode reports whether production_safety.safe_mode is on.
func (c *Config) SafeMode() bool { return c.v.GetBool(KeySafeMode) }

// SystemChecks returns the configured check identifiers.
func (c *Config) SystemChecks() []string { return c.v.GetStringSlice(KeySystemChecks) }

// Branding returns the banner title and subtitle.
func (c *Config) Branding() (title, subtitle string) {
	return c.v.GetString(KeyBrandingTitle), c.v.GetString(KeyBrandingSubtitle)
}

var (
	currentMu sync.RWMutex
	current   *Config
)

// Current returns the process-wide configuration used by plugins.
// Before SetCurrent is called it holds the defaults.
func Current() *Config {
	currentMu.RLock()
	c := current
	currentMu.RUnlock()
	if c != nil {
		return c
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = New()
	}
	return current
}

// SetCurrent installs c as the process-wide configuration.
func SetCurrent(c *Config) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = c
}
