package rendertree

import (
	"fmt"
	"sort"

	"github.com/petrarca/component-resolver/internal/dom"
	"github.com/petrarca/component-resolver/internal/types"
)

// Renderer is one renderer registered with the introspection hook
type Renderer struct {
	ID     string
	byHost map[types.Element]*types.RenderNode
}

// FindNodeByHostInstance returns the node hosting el in this renderer, or nil
func (r *Renderer) FindNodeByHostInstance(el types.Element) *types.RenderNode {
	return r.byHost[el]
}

// Hook is the snapshot form of the framework's global introspection hook.
// When the snapshot exposes a direct lookup it is consulted first, otherwise
// every registered renderer is scanned in registration order.
type Hook struct {
	direct    map[types.Element]*types.RenderNode
	renderers []*Renderer
}

// Hook binds the snapshot's devtools section to a parsed document.
// It returns nil, nil when the snapshot exposes no hook.
func (t *Tree) Hook(doc *dom.Document) (*Hook, error) {
	if t.devtools == nil {
		return nil, nil
	}

	hook := &Hook{}
	if t.devtools.Direct {
		hook.direct = make(map[types.Element]*types.RenderNode)
	}

	for i, spec := range t.devtools.Renderers {
		id := spec.ID
		if id == "" {
			id = fmt.Sprintf("renderer-%d", i+1)
		}
		renderer := &Renderer{ID: id, byHost: make(map[types.Element]*types.RenderNode)}

		selectors := make([]string, 0, len(spec.Bindings))
		for selector := range spec.Bindings {
			selectors = append(selectors, selector)
		}
		sort.Strings(selectors)

		for _, selector := range selectors {
			nodeID := spec.Bindings[selector]
			node, ok := t.Node(nodeID)
			if !ok {
				return nil, fmt.Errorf("%w: %s (bound to %q in %s)", ErrUnknownNode, nodeID, selector, id)
			}
			elements, err := doc.Select(selector)
			if err != nil {
				return nil, fmt.Errorf("renderer %s: %w", id, err)
			}
			for _, el := range elements {
				renderer.byHost[el] = node
				if hook.direct != nil {
					hook.direct[el] = node
				}
			}
		}

		hook.renderers = append(hook.renderers, renderer)
	}

	return hook, nil
}

// Renderers returns the registered renderers
func (h *Hook) Renderers() []*Renderer {
	return h.renderers
}

// FindOwnerOf returns the render node hosting el, or nil when no renderer knows it
func (h *Hook) FindOwnerOf(el types.Element) (*types.RenderNode, error) {
	if h == nil {
		return nil, nil
	}
	if h.direct != nil {
		return h.direct[el], nil
	}
	for _, r := range h.renderers {
		if node := r.FindNodeByHostInstance(el); node != nil {
			return node, nil
		}
	}
	return nil, nil
}
