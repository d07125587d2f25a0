package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_Defaults(t *testing.T) {
	c := New()

	assert.Equal(t, "local", c.Environment())
	assert.False(t, c.IsProduction())
	assert.Equal(t, "opshell", c.AppName())
	assert.True(t, c.SafeMode())
	assert.True(t, c.FeatureEnabled("search"))
	assert.True(t, c.FeatureEnabled("raw_execution"))
	assert.True(t, c.FeatureEnabled("variable_manager"))
	assert.True(t, c.FeatureEnabled("system_status"))
	assert.True(t, c.FeatureEnabled("unknown_feature"))
	assert.Equal(t, SourceRegistry, c.GetString(KeyDiscoverySource))
	assert.Empty(t, c.SystemChecks())
	assert.False(t, c.IsSet(KeyAppKey))

	title, subtitle := c.Branding()
	assert.NotEmpty(t, title)
	assert.NotEmpty(t, subtitle)
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{env: "production", want: true},
		{env: "Production", want: true},
		{env: " production ", want: true},
		{env: "prod", want: false},
		{env: "staging", want: false},
		{env: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			c := New()
			c.Set(KeyAppEnv, tt.env)
			assert.Equal(t, tt.want, c.IsProduction())
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "opshell.yaml", `
app:
  env: production
  key: base64:abc
features:
  search: false
production_safety:
  safe_mode: false
system_checks:
  - app/checks.AppKeyCheck
  - TempDirCheck
branding:
  title: Ops
`)

	c, err := Load(Options{File: file, SkipDotEnv: true})
	require.NoError(t, err)

	assert.True(t, c.IsProduction())
	assert.True(t, c.IsSet(KeyAppKey))
	assert.False(t, c.FeatureEnabled("search"))
	assert.True(t, c.FeatureEnabled("system_status"))
	assert.False(t, c.SafeMode())
	assert.Equal(t, []string{"app/checks.AppKeyCheck", "TempDirCheck"}, c.SystemChecks())

	title, _ := c.Branding()
	assert.Equal(t, "Ops", title)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml"), SkipDotEnv: true})
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	file := writeFile(t, t.TempDir(), "opshell.yaml", "app: [broken")
	_, err := Load(Options{File: file, SkipDotEnv: true})
	assert.Error(t, err)
}

func TestRawExecutionAlias(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		enabled bool
	}{
		{name: "defaults", yaml: "app:\n  env: local\n", enabled: true},
		{name: "new key off", yaml: "features:\n  raw_execution: false\n", enabled: false},
		{name: "historical key off", yaml: "features:\n  raw_php: false\n", enabled: false},
		{name: "historical key on", yaml: "features:\n  raw_php: true\n", enabled: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeFile(t, t.TempDir(), "opshell.yaml", tt.yaml)
			c, err := Load(Options{File: file, SkipDotEnv: true})
			require.NoError(t, err)
			assert.Equal(t, tt.enabled, c.RawExecutionEnabled())
			assert.Equal(t, tt.enabled, c.FeatureEnabled("raw_execution"))
			assert.Equal(t, tt.enabled, c.FeatureEnabled("raw_php"))
		})
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	file := writeFile(t, t.TempDir(), "opshell.yaml", "app:\n  env: staging\n")
	t.Setenv("OPSHELL_APP_ENV", "production")
	t.Setenv("OPSHELL_FEATURES_SEARCH", "false")

	c, err := Load(Options{File: file, SkipDotEnv: true})
	require.NoError(t, err)

	assert.True(t, c.IsProduction())
	assert.False(t, c.FeatureEnabled("search"))
}

func TestPlainAppEnvVariable(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_KEY", "secret")

	c := New()
	assert.True(t, c.IsProduction())
	assert.True(t, c.IsSet(KeyAppKey))
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "APP_ENV=production\nOPSHELL_FEATURES_RAW_PHP=false\nOPSHELL_BRANDING_SUBTITLE=\"From dotenv\"\nUNRELATED=1\n")

	c, err := Load(Options{File: writeFile(t, dir, "opshell.yaml", "app:\n  name: demo\n"), DotEnv: env})
	require.NoError(t, err)

	assert.True(t, c.IsProduction())
	assert.False(t, c.RawExecutionEnabled())
	_, subtitle := c.Branding()
	assert.Equal(t, "From dotenv", subtitle)
	assert.Equal(t, "demo", c.AppName())
}

func TestDotEnv_FileWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env", "OPSHELL_APP_NAME=from-dotenv\n")
	file := writeFile(t, dir, "opshell.yaml", "app:\n  name: from-file\n")

	c, err := Load(Options{File: file, DotEnv: env})
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.AppName())
}

func TestDotEnv_Missing(t *testing.T) {
	file := writeFile(t, t.TempDir(), "opshell.yaml", "app:\n  env: local\n")
	_, err := Load(Options{File: file, DotEnv: filepath.Join(t.TempDir(), ".env")})
	assert.NoError(t, err)
}

func TestCurrent(t *testing.T) {
	t.Cleanup(func() { SetCurrent(nil) })

	SetCurrent(nil)
	assert.Equal(t, "local", Current().Environment())

	c := New()
	c.Set(KeyAppEnv, "production")
	SetCurrent(c)
	assert.Same(t, c, Current())
}
