package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), tt.input)
	}
}

func TestConfigure_LogFile(t *testing.T) {
	t.Cleanup(func() { _ = Configure("warn", "") })
	path := filepath.Join(t.TempDir(), "opshell.log")

	require.NoError(t, Configure("debug", path))
	Debug("Executing script", "script", "clear-cache")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Executing script")
	assert.Contains(t, string(data), "clear-cache")
}

func TestConfigure_EnvironmentLevel(t *testing.T) {
	t.Cleanup(func() { _ = Configure("warn", "") })
	t.Setenv("OPSHELL_LOG_LEVEL", "ERROR")

	require.NoError(t, Configure("", ""))
	assert.Equal(t, log.ErrorLevel, Logger.GetLevel())

	require.NoError(t, Configure("info", ""))
	assert.Equal(t, log.InfoLevel, Logger.GetLevel(), "flag wins over environment")
}

func TestConfigure_BadFile(t *testing.T) {
	assert.Error(t, Configure("info", filepath.Join(t.TempDir(), "missing", "dir", "log")))
}

func TestStyledLoggerFollowsOutputAndLevel(t *testing.T) {
	t.Cleanup(func() { _ = Configure("warn", "") })
	require.NoError(t, Configure("info", ""))

	var buf bytes.Buffer
	SetOutput(&buf)

	l := NewStyledLogger("Discovery")
	l.Debug("hidden")
	l.Info("Loaded", "category", "users")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Discovery")
	assert.Contains(t, out, "users")
}

func TestHelpersRespectLevel(t *testing.T) {
	t.Cleanup(func() { _ = Configure("warn", "") })
	require.NoError(t, Configure("warn", ""))

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("quiet")
	DiscoveryStep("category", "UsersCategory", "registered")
	Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.NotContains(t, buf.String(), "UsersCategory")
	assert.Contains(t, buf.String(), "loud")
}
