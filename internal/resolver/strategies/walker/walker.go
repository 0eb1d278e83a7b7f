// Package walker resolves identities from the render node the framework attaches
// to host elements, without any global hook.
package walker

import (
	"github.com/petrarca/component-resolver/internal/constants"
	"github.com/petrarca/component-resolver/internal/resolver/naming"
	"github.com/petrarca/component-resolver/internal/resolver/pathbuilder"
	"github.com/petrarca/component-resolver/internal/resolver/strategies"
	"github.com/petrarca/component-resolver/internal/types"
)

// MaxElementHops bounds the climb through element ancestors looking for an attached node
const MaxElementHops = 10

// Strategy walks from an element to its attached render node and up the owner chain
type Strategy struct {
	accessor strategies.Accessor
	kit      *strategies.Toolkit
}

// New creates a walker strategy. A nil accessor makes every resolution defer.
func New(accessor strategies.Accessor, kit *strategies.Toolkit) *Strategy {
	return &Strategy{accessor: accessor, kit: kit}
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return constants.StrategyWalker
}

// Resolve climbs element ancestors (at most MaxElementHops) until one carries a render
// node with an acceptable owner. The path is the filtered owner chain of that node followed
// by the markup segments of the elements climbed past, outermost first.
func (s *Strategy) Resolve(el types.Element) (*types.ComponentIdentity, error) {
	if s.accessor == nil || el == nil {
		return nil, nil
	}

	var markup []string
	var first *types.RenderNode
	firstDepth := 0
	current := el
	for depth := 0; current != nil && depth < MaxElementHops; depth++ {
		if node := s.accessor.NodeOf(current); node != nil {
			if first == nil {
				first, firstDepth = node, depth
			}
			if owner, _ := s.kit.NearestAcceptedOwner(node, pathbuilder.MaxOwnerHops); owner != nil {
				components := pathbuilder.RenderPath(owner, s.kit.Filter)
				return s.identity(el, owner, components, markup), nil
			}
		}

		if depth == 0 {
			markup = append(markup, pathbuilder.TagWithClasses(current))
		} else {
			markup = append(markup, pathbuilder.Tag(current))
		}
		current = current.Parent()
	}

	if first == nil {
		return nil, nil
	}

	// Nodes were found but only wrappers own them
	return s.identity(el, first, nil, markup[:firstDepth+1]), nil
}

func (s *Strategy) identity(el types.Element, node *types.RenderNode, components, markup []string) *types.ComponentIdentity {
	name := s.name(node, components)
	if len(components) == 0 {
		components = []string{name}
	}

	return &types.ComponentIdentity{
		Name:          name,
		Path:          pathbuilder.Join(components, pathbuilder.Reverse(markup)),
		Strategy:      constants.StrategyWalker,
		Attributes:    pathbuilder.SanitizeProps(node.Props, s.kit.Heuristics.UnsafeProps),
		SourceElement: el,
		RenderNode:    node,
	}
}

// name prefers the innermost component segment, then the immediate owner name when it is
// not a wrapper, then the generic literal. The immediate owner goes through the wrapper
// filter on purpose: a wrapper name is never reported as the resolved component.
func (s *Strategy) name(node *types.RenderNode, components []string) string {
	if len(components) > 0 {
		return components[len(components)-1]
	}
	if _, owner := naming.NearestOwner(node, pathbuilder.MaxOwnerHops); s.kit.Filter.Accepts(owner) {
		return owner
	}
	return constants.GenericComponent
}
