package rules

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/petrarca/component-resolver/internal/types"
	"github.com/petrarca/component-resolver/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed all:heuristics
var coreHeuristicsFS embed.FS

// HeuristicsSchema is the embedded schema every heuristics file must satisfy
const HeuristicsSchema = "heuristics.json"

// LoadEmbeddedHeuristics loads and merges all heuristics files from the embedded filesystem
func LoadEmbeddedHeuristics() (*types.Heuristics, error) {
	merged := &types.Heuristics{Name: "embedded"}

	err := fs.WalkDir(coreHeuristicsFS, "heuristics", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isYAML(path) {
			return nil
		}

		content, err := coreHeuristicsFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read heuristics file %s: %w", path, err)
		}

		h, err := parseHeuristics(path, content)
		if err != nil {
			return err
		}

		merged.Merge(h)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk embedded heuristics: %w", err)
	}

	return merged, nil
}

// LoadExternalHeuristics loads heuristics files from an external directory.
// The result only holds what the directory contributes; callers merge it over the embedded set.
func LoadExternalHeuristics(dir string) (*types.Heuristics, error) {
	merged := &types.Heuristics{Name: filepath.Base(dir)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isYAML(path) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read heuristics file %s: %w", path, err)
		}

		h, err := parseHeuristics(path, content)
		if err != nil {
			return err
		}

		merged.Merge(h)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk external heuristics: %w", err)
	}

	return merged, nil
}

// Load returns the embedded heuristics, extended by externalDir when it is not empty
func Load(externalDir string) (*types.Heuristics, error) {
	h, err := LoadEmbeddedHeuristics()
	if err != nil {
		return nil, err
	}

	if externalDir == "" {
		return h, nil
	}

	external, err := LoadExternalHeuristics(externalDir)
	if err != nil {
		return nil, err
	}
	h.Merge(external)

	return h, nil
}

func parseHeuristics(path string, content []byte) (*types.Heuristics, error) {
	if err := validation.ValidateYAML(HeuristicsSchema, content); err != nil {
		return nil, fmt.Errorf("invalid heuristics in %s: %w", path, err)
	}

	var h types.Heuristics
	if err := yaml.Unmarshal(content, &h); err != nil {
		return nil, fmt.Errorf("failed to parse heuristics file %s: %w", path, err)
	}

	if h.Name == "" {
		h.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &h, nil
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
