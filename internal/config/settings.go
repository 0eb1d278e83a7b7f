package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"log/slog"

	"github.com/petrarca/component-resolver/internal/util"
)

const envPrefix = "COMPONENT_RESOLVER_"

// Settings holds all resolver configuration
type Settings struct {
	// Output settings
	OutputFile  string // Empty = stdout
	Format      string // "json", "yaml" or "text"
	PrettyPrint bool
	Aggregate   string // Comma-separated aggregate fields (names,strategies,paths); empty = full report

	// Resolution behavior
	RulesDir        string // Optional directory of extra heuristic YAML files
	NoDevTools      bool   // Ignore the snapshot's introspection hook
	AttachAttribute string // Element attribute carrying the attached render node id
	Concurrency     int    // Parallel resolutions for --all
	Verbose         bool
	Debug           bool // Tree progress output with per-strategy tracing

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		OutputFile:      "",
		Format:          "json",
		PrettyPrint:     true,
		Aggregate:       "",
		RulesDir:        "",
		NoDevTools:      false,
		AttachAttribute: "data-render-id",
		Concurrency:     4,
		Verbose:         false,
		Debug:           false,
		LogLevel:        slog.LevelError, // Only errors by default; strategy faults are warnings
		LogFormat:       "text",
		LogFile:         "", // Empty = stderr
	}
}

// LoadSettings creates settings from defaults and applies environment variable overrides
func LoadSettings() *Settings {
	settings := DefaultSettings()

	// Apply environment variable overrides
	if outputFile := getenv("OUTPUT"); outputFile != "" {
		settings.OutputFile = outputFile
	}

	if format := getenv("FORMAT"); format != "" {
		settings.Format = util.NormalizeFormat(format)
	}

	if pretty := getenv("PRETTY"); pretty != "" {
		settings.PrettyPrint = strings.ToLower(pretty) == "true"
	}

	if aggregate := getenv("AGGREGATE"); aggregate != "" {
		settings.Aggregate = aggregate
	}

	if rulesDir := getenv("RULES_DIR"); rulesDir != "" {
		settings.RulesDir = rulesDir
	}

	if noDevTools := getenv("NO_DEVTOOLS"); noDevTools != "" {
		settings.NoDevTools = strings.ToLower(noDevTools) == "true"
	}

	if attr := getenv("ATTACH_ATTR"); attr != "" {
		settings.AttachAttribute = attr
	}

	if concurrency := getenv("CONCURRENCY"); concurrency != "" {
		if n, err := strconv.Atoi(concurrency); err == nil && n > 0 {
			settings.Concurrency = n
		}
	}

	// Logging settings
	if logLevel := getenv("LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := getenv("LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := getenv("LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	if verbose := getenv("VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	if debug := getenv("DEBUG"); debug != "" {
		settings.Debug = strings.ToLower(debug) == "true"
	}

	return settings
}

func getenv(name string) string {
	return os.Getenv(envPrefix + name)
}

// ParseLogLevel converts string log level to slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger builds the logger described by the settings
func (s *Settings) ConfigureLogger() *slog.Logger {
	var handler slog.Handler

	// Set output destination
	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stderr if file can't be opened
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{
		Level: s.LogLevel,
	}

	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Validate checks that the settings can drive a resolution run
func (s *Settings) Validate() error {
	if err := util.ValidateOutputFormat(s.Format); err != nil {
		return err
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", s.Concurrency)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s. Valid formats are: text, json", s.LogFormat)
	}
	if strings.TrimSpace(s.AttachAttribute) == "" {
		return fmt.Errorf("attach attribute must not be empty")
	}
	return nil
}
