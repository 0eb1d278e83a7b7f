package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// JobFile represents an external resolution job file, letting a run be described
// declaratively instead of through flags
type JobFile struct {
	Resolve JobSection `yaml:"resolve" json:"resolve"`
}

// JobSection contains all job options
type JobSection struct {
	// What to resolve
	HTML     string `yaml:"html,omitempty" json:"html,omitempty"`
	Tree     string `yaml:"tree,omitempty" json:"tree,omitempty"`
	Selector string `yaml:"selector,omitempty" json:"selector,omitempty"`
	All      bool   `yaml:"all,omitempty" json:"all,omitempty"`

	// Output configuration
	Output JobOutput `yaml:"output,omitempty" json:"output,omitempty"`

	// Resolver options
	Options JobOptions `yaml:"options,omitempty" json:"options,omitempty"`
}

// JobOutput defines output settings
type JobOutput struct {
	File      string `yaml:"file,omitempty" json:"file,omitempty"`
	Format    string `yaml:"format,omitempty" json:"format,omitempty"`
	Pretty    bool   `yaml:"pretty,omitempty" json:"pretty,omitempty"`
	Aggregate string `yaml:"aggregate,omitempty" json:"aggregate,omitempty"`
}

// JobOptions defines resolver behavior options
type JobOptions struct {
	Verbose         bool   `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	Debug           bool   `yaml:"debug,omitempty" json:"debug,omitempty"`
	NoDevTools      bool   `yaml:"no_devtools,omitempty" json:"no_devtools,omitempty"`
	RulesDir        string `yaml:"rules_dir,omitempty" json:"rules_dir,omitempty"`
	AttachAttribute string `yaml:"attach_attribute,omitempty" json:"attach_attribute,omitempty"`
	Concurrency     int    `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
}

// LoadJob loads a job from a file path or inline JSON
func LoadJob(jobPath string) (*JobFile, error) {
	if jobPath == "" {
		return nil, nil
	}

	// Check if it's inline JSON (starts with {)
	if strings.HasPrefix(strings.TrimSpace(jobPath), "{") {
		return loadJobFromJSON(jobPath)
	}

	return loadJobFromFile(jobPath)
}

// loadJobFromFile loads a job from a YAML or JSON file
func loadJobFromFile(jobPath string) (*JobFile, error) {
	data, err := os.ReadFile(jobPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var job JobFile

	// Try YAML first (most common)
	if err := yaml.Unmarshal(data, &job); err != nil {
		// Fallback to JSON
		if jsonErr := json.Unmarshal(data, &job); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse job as YAML (%v) or JSON (%v)", err, jsonErr)
		}
	}

	return &job, nil
}

// loadJobFromJSON loads a job from an inline JSON string
func loadJobFromJSON(jsonStr string) (*JobFile, error) {
	var job JobFile
	if err := json.Unmarshal([]byte(jsonStr), &job); err != nil {
		return nil, fmt.Errorf("failed to parse inline JSON job: %w", err)
	}
	return &job, nil
}

// MergeWithSettings merges job options into settings.
// Settings that differ from their defaults are assumed to come from flags and are kept.
func (j *JobFile) MergeWithSettings(settings *Settings) {
	if j == nil || settings == nil {
		return
	}
	defaults := DefaultSettings()
	out, opts := j.Resolve.Output, j.Resolve.Options

	// Output settings
	if out.File != "" && settings.OutputFile == defaults.OutputFile {
		settings.OutputFile = out.File
	}
	if out.Format != "" && settings.Format == defaults.Format {
		settings.Format = strings.ToLower(out.Format)
	}
	if !settings.PrettyPrint && out.Pretty {
		settings.PrettyPrint = true
	}
	if settings.Aggregate == "" && out.Aggregate != "" {
		settings.Aggregate = out.Aggregate
	}

	// Resolver options
	if !settings.Verbose && opts.Verbose {
		settings.Verbose = true
	}
	if !settings.Debug && opts.Debug {
		settings.Debug = true
	}
	if !settings.NoDevTools && opts.NoDevTools {
		settings.NoDevTools = true
	}
	if settings.RulesDir == "" && opts.RulesDir != "" {
		settings.RulesDir = opts.RulesDir
	}
	if settings.AttachAttribute == defaults.AttachAttribute && opts.AttachAttribute != "" {
		settings.AttachAttribute = opts.AttachAttribute
	}
	if settings.Concurrency == defaults.Concurrency && opts.Concurrency > 0 {
		settings.Concurrency = opts.Concurrency
	}
}
