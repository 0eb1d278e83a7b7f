// Package devtools resolves identities through the host framework's global
// introspection hook, the most authoritative signal available.
package devtools

import (
	"fmt"

	"github.com/petrarca/component-resolver/internal/constants"
	"github.com/petrarca/component-resolver/internal/resolver/pathbuilder"
	"github.com/petrarca/component-resolver/internal/resolver/strategies"
	"github.com/petrarca/component-resolver/internal/types"
)

// Strategy asks the introspection hook for the render node that owns an element
type Strategy struct {
	hook strategies.Hook
	kit  *strategies.Toolkit
}

// New creates a devtools strategy. A nil hook makes every resolution defer.
func New(hook strategies.Hook, kit *strategies.Toolkit) *Strategy {
	return &Strategy{hook: hook, kit: kit}
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return constants.StrategyDevTools
}

// Resolve looks up the element's render node through the hook and names its nearest
// non-wrapper owner.
func (s *Strategy) Resolve(el types.Element) (*types.ComponentIdentity, error) {
	if s.hook == nil || el == nil {
		return nil, nil
	}

	node, err := s.hook.FindOwnerOf(el)
	if err != nil {
		return nil, fmt.Errorf("introspection hook lookup failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}

	owner, name := s.kit.NearestAcceptedOwner(node, pathbuilder.MaxOwnerHops)
	if owner == nil {
		return nil, nil
	}

	path := pathbuilder.RenderPath(owner, s.kit.Filter)
	if len(path) == 0 {
		path = []string{name}
	}

	return &types.ComponentIdentity{
		Name:          path[len(path)-1],
		Path:          path,
		Strategy:      constants.StrategyDevTools,
		Attributes:    pathbuilder.SanitizeProps(owner.Props, s.kit.Heuristics.UnsafeProps),
		SourceElement: el,
		RenderNode:    owner,
	}, nil
}
