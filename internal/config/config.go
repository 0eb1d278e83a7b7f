package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/petrarca/component-resolver/internal/types"
	"github.com/petrarca/component-resolver/internal/validation"
)

// ProjectConfigFile is the per-project configuration file looked up next to the snapshots
const ProjectConfigFile = ".component-resolver.yml"

// ProjectConfigSchema is the embedded schema the project configuration must satisfy
const ProjectConfigSchema = "component-resolver-yml.json"

// ProjectConfig represents the .component-resolver.yml configuration file
type ProjectConfig struct {
	AttachAttribute string            `yaml:"attach_attribute,omitempty" json:"attach_attribute,omitempty"`
	DevTools        *bool             `yaml:"devtools,omitempty" json:"devtools,omitempty"`
	Heuristics      *types.Heuristics `yaml:"heuristics,omitempty" json:"heuristics,omitempty"`
}

// LoadProjectConfig attempts to load .component-resolver.yml from dir.
// Returns an empty config if the file doesn't exist (not an error).
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ProjectConfigFile)

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseProjectConfig(data)
}

// ParseProjectConfig validates and decodes project configuration content
func ParseProjectConfig(data []byte) (*ProjectConfig, error) {
	if err := validation.ValidateYAML(ProjectConfigSchema, data); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ProjectConfigFile, err)
	}

	var config ProjectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectConfigFile, err)
	}
	return &config, nil
}

// Apply merges the project configuration into settings and heuristics.
// Explicitly set settings win over the project file.
func (c *ProjectConfig) Apply(settings *Settings, heuristics *types.Heuristics) {
	if c == nil {
		return
	}

	if settings != nil {
		if c.AttachAttribute != "" && settings.AttachAttribute == DefaultSettings().AttachAttribute {
			settings.AttachAttribute = c.AttachAttribute
		}
		if c.DevTools != nil && !*c.DevTools {
			settings.NoDevTools = true
		}
	}

	if heuristics != nil && c.Heuristics != nil {
		heuristics.Merge(c.Heuristics)
	}
}
