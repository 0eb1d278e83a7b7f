package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, "", settings.OutputFile, "OutputFile should be stdout by default")
	assert.Equal(t, "json", settings.Format, "Format should be json by default")
	assert.True(t, settings.PrettyPrint, "PrettyPrint should be true by default")
	assert.Equal(t, "", settings.Aggregate, "Aggregate should be empty by default")
	assert.Equal(t, "data-render-id", settings.AttachAttribute)
	assert.Equal(t, 4, settings.Concurrency)
	assert.Equal(t, slog.LevelError, settings.LogLevel, "LogLevel should be Error by default")
	assert.Equal(t, "text", settings.LogFormat, "LogFormat should be text by default")
}

func TestLoadSettings_WithDefaults(t *testing.T) {
	clearEnvVars(t)

	settings := LoadSettings()

	// Should match default settings
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettings_WithEnvironmentVariables(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("COMPONENT_RESOLVER_OUTPUT", "/tmp/test.json")
	t.Setenv("COMPONENT_RESOLVER_FORMAT", "YAML")
	t.Setenv("COMPONENT_RESOLVER_PRETTY", "false")
	t.Setenv("COMPONENT_RESOLVER_AGGREGATE", "names,strategies")
	t.Setenv("COMPONENT_RESOLVER_RULES_DIR", "/etc/resolver/rules")
	t.Setenv("COMPONENT_RESOLVER_NO_DEVTOOLS", "TRUE")
	t.Setenv("COMPONENT_RESOLVER_ATTACH_ATTR", "data-fiber")
	t.Setenv("COMPONENT_RESOLVER_CONCURRENCY", "16")
	t.Setenv("COMPONENT_RESOLVER_LOG_LEVEL", "debug")
	t.Setenv("COMPONENT_RESOLVER_LOG_FORMAT", "json")
	t.Setenv("COMPONENT_RESOLVER_VERBOSE", "true")

	settings := LoadSettings()

	assert.Equal(t, "/tmp/test.json", settings.OutputFile)
	assert.Equal(t, "yaml", settings.Format)
	assert.False(t, settings.PrettyPrint)
	assert.Equal(t, "names,strategies", settings.Aggregate)
	assert.Equal(t, "/etc/resolver/rules", settings.RulesDir)
	assert.True(t, settings.NoDevTools)
	assert.Equal(t, "data-fiber", settings.AttachAttribute)
	assert.Equal(t, 16, settings.Concurrency)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	assert.Equal(t, "json", settings.LogFormat)
	assert.True(t, settings.Verbose)
}

func TestLoadSettings_InvalidValuesKeepDefaults(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("COMPONENT_RESOLVER_LOG_LEVEL", "invalid")
	t.Setenv("COMPONENT_RESOLVER_CONCURRENCY", "-2")

	settings := LoadSettings()

	assert.Equal(t, slog.LevelError, settings.LogLevel, "Should use default log level for invalid input")
	assert.Equal(t, 4, settings.Concurrency, "Should use default concurrency for invalid input")
}

func TestLoadSettings_BooleanParsing(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected bool
	}{
		{"true lowercase", "true", true},
		{"true uppercase", "TRUE", true},
		{"false lowercase", "false", false},
		{"false uppercase", "FALSE", false},
		{"invalid value", "maybe", false}, // Should default to false
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			t.Setenv("COMPONENT_RESOLVER_PRETTY", tt.envValue)

			settings := LoadSettings()
			assert.Equal(t, tt.expected, settings.PrettyPrint)
		})
	}
}

func TestLoadSettings_DoesNotModifyDefaults(t *testing.T) {
	clearEnvVars(t)
	defaultSettings := DefaultSettings()

	t.Setenv("COMPONENT_RESOLVER_PRETTY", "false")
	settings := LoadSettings()

	assert.True(t, defaultSettings.PrettyPrint, "Default settings should not be modified")
	assert.False(t, settings.PrettyPrint, "Loaded settings should have environment override")
}

func TestConfigureLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
		level  slog.Level
	}{
		{"text format", "text", slog.LevelDebug},
		{"json format", "json", slog.LevelWarn},
		{"unknown format falls back to text", "invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &Settings{LogLevel: tt.level, LogFormat: tt.format}
			logger := settings.ConfigureLogger()
			require.NotNil(t, logger)
			assert.True(t, logger.Enabled(context.Background(), tt.level))
			assert.False(t, logger.Enabled(context.Background(), tt.level-1))
		})
	}
}

func TestConfigureLogger_File(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "resolver.log")
	settings := &Settings{LogLevel: slog.LevelWarn, LogFormat: "json", LogFile: logFile}

	settings.ConfigureLogger().Warn("strategy failed", "strategy", "walker")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"strategy":"walker"`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr string
	}{
		{name: "defaults", mutate: func(s *Settings) {}},
		{name: "bad format", mutate: func(s *Settings) { s.Format = "xml" }, wantErr: "invalid format"},
		{name: "zero concurrency", mutate: func(s *Settings) { s.Concurrency = 0 }, wantErr: "concurrency"},
		{name: "bad log format", mutate: func(s *Settings) { s.LogFormat = "xml" }, wantErr: "invalid log format"},
		{name: "empty attribute", mutate: func(s *Settings) { s.AttachAttribute = " " }, wantErr: "attach attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(settings)
			err := settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// clearEnvVars unsets every resolver variable for the duration of the test
func clearEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"OUTPUT", "FORMAT", "PRETTY", "AGGREGATE", "RULES_DIR", "NO_DEVTOOLS", "ATTACH_ATTR",
		"CONCURRENCY", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "VERBOSE", "DEBUG",
	}

	for _, name := range envVars {
		t.Setenv(envPrefix+name, "")
	}
}
