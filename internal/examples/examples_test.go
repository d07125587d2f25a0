package examples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opshell/internal/config"
	"opshell/internal/discovery"
	"opshell/internal/plugins"
	"opshell/internal/session"
	"opshell/internal/version"
	"opshell/pkg/optypes"
)

func TestExamplesCategory(t *testing.T) {
	cat := NewExamplesCategory()

	assert.Equal(t, "Examples", cat.Name())
	assert.Equal(t, "📚", cat.Icon())
	assert.Equal(t, 10, cat.SortOrder())
	assert.True(t, cat.IsEnabled())
	require.Len(t, cat.Scripts(), 1)
	assert.Equal(t, "example-script", cat.Scripts()[0].Name())
	assert.Equal(t, 1, cat.ExampleCount())
	assert.Len(t, cat.TutorialScripts(), 1)
	assert.Equal(t, "Example scripts demonstrating opshell plugins (1 example, 1 tutorial)", cat.Description())
}

func TestExamplesCategory_ShellRequirement(t *testing.T) {
	cat := NewExamplesCategory()
	assert.Equal(t, MinShellVersion, cat.RequiresShell())

	ok, err := version.Satisfies(cat.RequiresShell())
	require.NoError(t, err)
	assert.True(t, ok, "the examples run on the current build")
}

func TestExampleScript_Execute(t *testing.T) {
	store := session.New()
	script := NewExampleScript()

	result, err := script.Execute(optypes.Params{
		"user_id":            "42",
		"action":             "",
		optypes.SessionKey:   store,
		optypes.VariablesKey: store.Variables(),
	})
	require.NoError(t, err)

	res, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "Successfully processed user 42 with action 'info'", res["message"])

	stored, ok := store.Variable(LastUserVariable)
	require.True(t, ok)
	assert.Equal(t, res["data"], stored)
	assert.Equal(t, "info", stored.(map[string]any)["action"])
}

func TestExampleScript_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		params optypes.Params
	}{
		{"missing", optypes.Params{}},
		{"empty", optypes.Params{"user_id": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewExampleScript().Execute(tt.params)
			require.NoError(t, err)
			res := result.(map[string]any)
			assert.Equal(t, false, res["success"])
			assert.Contains(t, res["error"], "Validation failed:")
			assert.Contains(t, res["error"], "'user_id'")
		})
	}
}

func TestExampleScript_WithoutSession(t *testing.T) {
	result, err := NewExampleScript().Execute(optypes.Params{"user_id": "7", "action": "audit"})
	require.NoError(t, err)
	assert.Equal(t, "Successfully processed user 7 with action 'audit'", result.(map[string]any)["message"])
}

func TestExampleCheck(t *testing.T) {
	prev := config.Current()
	t.Cleanup(func() { config.SetCurrent(prev) })

	dir := t.TempDir()
	file := filepath.Join(dir, "opshell.yaml")
	require.NoError(t, os.WriteFile(file, []byte("app:\n  key: secret\n"), 0o600))
	cfg, err := config.Load(config.Options{File: file, SkipDotEnv: true})
	require.NoError(t, err)
	config.SetCurrent(cfg)

	results := NewExampleCheck().Run()

	require.Len(t, results, 4)
	assert.Equal(t, optypes.CheckResult{Successful: true, Message: "Application key is configured"}, results[0])
	assert.Equal(t, "Config file is readable: "+file, results[1].Message)
	assert.True(t, results[2].Successful)
	assert.Contains(t, results[3].Message, "Heap usage")

	config.SetCurrent(config.New())
	results = NewExampleCheck().Run()
	assert.Equal(t, "No config file in use, defaults apply", results[1].Message)
}

func TestRegisteredPluginsAreDiscoverable(t *testing.T) {
	categories := discovery.NewCategoryRegistry(discovery.CategoryConfig{
		Plugins:   plugins.GlobalRegistry,
		Namespace: plugins.CategoriesNamespace,
		Source:    discovery.RegistrySource{Plugins: plugins.GlobalRegistry, Namespace: plugins.CategoriesNamespace},
	})
	cat, ok := categories.Get("examples")
	require.True(t, ok)
	assert.Equal(t, "Examples", cat.Name())

	checks := discovery.NewCheckRegistry(discovery.CheckConfig{
		Plugins:   plugins.GlobalRegistry,
		Preload:   []string{"ExampleCheck"},
		Namespace: plugins.ChecksNamespace,
	})
	require.Len(t, checks.Checks(), 1)
	assert.Equal(t, "Example System Check", checks.Checks()[0].Label())
}
