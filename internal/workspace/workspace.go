// Package workspace loads the snapshots a resolution run works on and wires
// them into a resolver.
package workspace

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/petrarca/component-resolver/internal/config"
	"github.com/petrarca/component-resolver/internal/dom"
	"github.com/petrarca/component-resolver/internal/progress"
	"github.com/petrarca/component-resolver/internal/rendertree"
	"github.com/petrarca/component-resolver/internal/resolver"
	"github.com/petrarca/component-resolver/internal/rules"
	"github.com/petrarca/component-resolver/internal/types"
)

// Workspace holds a parsed DOM snapshot, its optional render tree and the project
// configuration found next to the DOM snapshot.
type Workspace struct {
	HTMLPath string
	TreePath string
	Document *dom.Document
	Tree     *rendertree.Tree // nil when no render tree snapshot was given
	Project  *config.ProjectConfig
}

// Load reads the snapshots through p. treePath may be empty.
func Load(p types.Provider, htmlPath, treePath string) (*Workspace, error) {
	content, err := p.ReadFile(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read DOM snapshot %s: %w", htmlPath, err)
	}
	doc, err := dom.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOM snapshot %s: %w", htmlPath, err)
	}

	ws := &Workspace{
		HTMLPath: htmlPath,
		TreePath: treePath,
		Document: doc,
		Project:  &config.ProjectConfig{},
	}

	if treePath != "" {
		data, err := p.ReadFile(treePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read render tree %s: %w", treePath, err)
		}
		if ws.Tree, err = rendertree.Load(data); err != nil {
			return nil, fmt.Errorf("%s: %w", treePath, err)
		}
	}

	configPath := filepath.Join(filepath.Dir(htmlPath), config.ProjectConfigFile)
	if exists, _ := p.Exists(configPath); exists {
		data, err := p.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if ws.Project, err = config.ParseProjectConfig(data); err != nil {
			return nil, err
		}
	}

	return ws, nil
}

// Targets returns the elements matching selector in document order. Unless all is set,
// only the first match is returned.
func (w *Workspace) Targets(selector string, all bool) ([]*dom.Element, error) {
	if !all {
		el, err := w.Document.First(selector)
		if err != nil {
			return nil, err
		}
		return []*dom.Element{el}, nil
	}

	elements, err := w.Document.Select(selector)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("no element matches selector %q", selector)
	}
	return elements, nil
}

// Heuristics loads the embedded tables, the settings' rules directory and the project overrides.
// The project configuration is applied to settings as a side effect.
func (w *Workspace) Heuristics(settings *config.Settings) (*types.Heuristics, error) {
	h, err := rules.Load(settings.RulesDir)
	if err != nil {
		return nil, err
	}
	w.Project.Apply(settings, h)
	return h, nil
}

// Resolver builds a resolver over this workspace
func (w *Workspace) Resolver(settings *config.Settings, h *types.Heuristics, logger *slog.Logger, reporter progress.Reporter) (*resolver.Resolver, error) {
	opts := []resolver.Option{
		resolver.WithHeuristics(h),
		resolver.WithLogger(logger),
	}
	if reporter != nil {
		opts = append(opts, resolver.WithReporter(reporter))
	}

	if w.Tree != nil {
		opts = append(opts, resolver.WithAccessor(w.Tree.Accessor(settings.AttachAttribute)))

		if !settings.NoDevTools {
			hook, err := w.Tree.Hook(w.Document)
			if err != nil {
				return nil, fmt.Errorf("failed to bind introspection hook: %w", err)
			}
			if hook != nil {
				opts = append(opts, resolver.WithHook(hook))
			}
		}
	}

	return resolver.New(opts...)
}
