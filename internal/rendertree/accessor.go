package rendertree

import "github.com/petrarca/component-resolver/internal/types"

// DefaultAttachAttribute is the element attribute carrying the id of the attached render node
const DefaultAttachAttribute = "data-render-id"

// Accessor returns the render node attached to an element through an attribute,
// the snapshot equivalent of the framework's per-element expando property.
type Accessor struct {
	tree *Tree
	attr string
}

// Accessor creates an accessor reading attr (DefaultAttachAttribute when empty)
func (t *Tree) Accessor(attr string) *Accessor {
	if attr == "" {
		attr = DefaultAttachAttribute
	}
	return &Accessor{tree: t, attr: attr}
}

// NodeOf returns the node attached to el, or nil
func (a *Accessor) NodeOf(el types.Element) *types.RenderNode {
	if a == nil || a.tree == nil || el == nil {
		return nil
	}
	id, ok := el.Attr(a.attr)
	if !ok || id == "" {
		return nil
	}
	node, _ := a.tree.Node(id)
	return node
}
