package strategies

import (
	"github.com/petrarca/component-resolver/internal/resolver/naming"
	"github.com/petrarca/component-resolver/internal/types"
)

// Strategy is one tier of the detection chain.
//
// Resolve returns (nil, nil) when the strategy has no applicable signal (deferred)
// and a non-nil error when introspection failed (faulted). Either way the chain
// moves on to the next strategy.
type Strategy interface {
	// Name returns the name of this strategy (e.g., "devtools", "fallback")
	Name() string

	// Resolve infers the identity of the component owning el
	Resolve(el types.Element) (*types.ComponentIdentity, error)
}

// Accessor returns the render node the host framework attached to an element
type Accessor interface {
	NodeOf(el types.Element) *types.RenderNode
}

// Hook is the host framework's optional introspection capability
type Hook interface {
	FindOwnerOf(el types.Element) (*types.RenderNode, error)
}

// Toolkit bundles the heuristic tables and the matchers derived from them.
// It is built once and only read afterwards.
type Toolkit struct {
	Heuristics *types.Heuristics
	Filter     *naming.WrapperFilter
	Classes    *naming.ClassMatcher
}

// NewToolkit derives the matchers for h
func NewToolkit(h *types.Heuristics) *Toolkit {
	if h == nil {
		h = &types.Heuristics{}
	}
	return &Toolkit{
		Heuristics: h,
		Filter:     naming.NewWrapperFilter(h),
		Classes:    naming.NewClassMatcher(h),
	}
}

// NearestAcceptedOwner follows parents from node (at most maxHops nodes) to the first
// owner whose name is not an infrastructure wrapper.
func (k *Toolkit) NearestAcceptedOwner(node *types.RenderNode, maxHops int) (*types.RenderNode, string) {
	visited := make(map[*types.RenderNode]bool)
	for hops := 0; node != nil && hops < maxHops && !visited[node]; hops++ {
		visited[node] = true
		if name := naming.OwnerName(node.Type); k.Filter.Accepts(name) {
			return node, name
		}
		node = node.Parent
	}
	return nil, ""
}
