package checks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opshell/internal/config"
	"opshell/internal/plugins"
	"opshell/pkg/optypes"
)

func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	prev := config.Current()
	config.SetCurrent(cfg)
	t.Cleanup(func() { config.SetCurrent(prev) })
}

func TestAppKeyCheck(t *testing.T) {
	check := NewAppKeyCheck()
	assert.Equal(t, "Application Key", check.Label())

	cfg := config.New()
	cfg.Set(config.KeyAppKey, "")
	useConfig(t, cfg)
	results := check.Run()
	require.Len(t, results, 1)
	assert.False(t, results[0].Successful)
	assert.Contains(t, results[0].Message, "The application key is not set.")

	cfg.Set(config.KeyAppKey, "base64:c2VjcmV0")
	assert.Equal(t, []optypes.CheckResult{{Successful: true, Message: "The application key is set."}}, check.Run())
}

func TestWorkingDirCheck(t *testing.T) {
	dir := t.TempDir()
	check := NewWorkingDirCheck()

	check.getwd = func() (string, error) { return dir, nil }
	results := check.Run()
	require.Len(t, results, 1)
	assert.True(t, results[0].Successful)
	assert.Equal(t, "Working directory is writable: "+dir, results[0].Message)

	missing := filepath.Join(dir, "gone")
	check.getwd = func() (string, error) { return missing, nil }
	assert.False(t, check.Run()[0].Successful)

	check.getwd = func() (string, error) { return "", errors.New("deleted") }
	assert.Equal(t, "Cannot resolve the working directory: deleted", check.Run()[0].Message)

	check.getwd = func() (string, error) { panic("no cwd") }
	results = check.Run()
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Message, "Working Directory: FAILED - no cwd")
}

func TestTempDirCheck(t *testing.T) {
	dir := t.TempDir()
	check := NewTempDirCheck()

	check.dir = func() string { return dir }
	assert.True(t, check.Run()[0].Successful)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	check.dir = func() string { return file }
	results := check.Run()
	assert.False(t, results[0].Successful)
	assert.Equal(t, "Temporary directory is not writable: "+file, results[0].Message)
}

func TestRegistered(t *testing.T) {
	names := plugins.GlobalRegistry.Names(plugins.ChecksNamespace)
	for _, name := range []string{"AppKeyCheck", "WorkingDirCheck", "TempDirCheck"} {
		assert.Contains(t, names, name)
		factory, ok := plugins.GlobalRegistry.Resolve(plugins.Qualify(plugins.ChecksNamespace, name))
		require.True(t, ok, name)
		_, isCheck := factory().(optypes.SystemCheck)
		assert.True(t, isCheck, name)
	}
}
