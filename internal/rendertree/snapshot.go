package rendertree

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/petrarca/component-resolver/internal/types"
)

var (
	// ErrDuplicateNode is returned when two snapshot nodes share an id
	ErrDuplicateNode = errors.New("duplicate render node id")
	// ErrUnknownParent is returned when a node references a parent id that is not in the snapshot
	ErrUnknownParent = errors.New("unknown parent render node")
	// ErrUnknownNode is returned when a binding references a node id that is not in the snapshot
	ErrUnknownNode = errors.New("unknown render node")
)

// Snapshot is the on-disk form of a render tree dump (YAML or JSON)
type Snapshot struct {
	Nodes    []NodeSpec    `yaml:"nodes" json:"nodes"`
	DevTools *DevToolsSpec `yaml:"devtools,omitempty" json:"devtools,omitempty"`
}

// NodeSpec describes one render node
type NodeSpec struct {
	ID          string         `yaml:"id" json:"id"`
	Kind        string         `yaml:"kind" json:"kind"`
	Name        string         `yaml:"name,omitempty" json:"name,omitempty"`
	DisplayName string         `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Inner       *OwnerSpec     `yaml:"inner,omitempty" json:"inner,omitempty"`
	Parent      string         `yaml:"parent,omitempty" json:"parent,omitempty"`
	Props       map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
}

// OwnerSpec describes the type wrapped by a forward-ref or memo node
type OwnerSpec struct {
	Kind        string     `yaml:"kind" json:"kind"`
	Name        string     `yaml:"name,omitempty" json:"name,omitempty"`
	DisplayName string     `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Inner       *OwnerSpec `yaml:"inner,omitempty" json:"inner,omitempty"`
}

// DevToolsSpec describes the introspection hook exposed by the host framework
type DevToolsSpec struct {
	// Direct reports whether the hook exposes a direct element lookup
	Direct    bool           `yaml:"direct" json:"direct"`
	Renderers []RendererSpec `yaml:"renderers" json:"renderers"`
}

// RendererSpec maps CSS selectors to the render node hosting the matched element
type RendererSpec struct {
	ID       string            `yaml:"id" json:"id"`
	Bindings map[string]string `yaml:"bindings" json:"bindings"`
}

// FuncRef stands in for a function-valued prop. Snapshots encode them as {"$fn": "name"}.
type FuncRef struct {
	Name string
}

// Tree is a linked render tree
type Tree struct {
	nodes    map[string]*types.RenderNode
	order    []*types.RenderNode
	devtools *DevToolsSpec
}

// Load parses a YAML or JSON render tree snapshot and links parents by id.
// Parent cycles are accepted; consumers must bound their walks.
func Load(data []byte) (*Tree, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse render tree snapshot: %w", err)
	}
	return FromSnapshot(&snapshot)
}

// FromSnapshot links an already decoded snapshot
func FromSnapshot(snapshot *Snapshot) (*Tree, error) {
	tree := &Tree{
		nodes:    make(map[string]*types.RenderNode, len(snapshot.Nodes)),
		devtools: snapshot.DevTools,
	}

	for _, spec := range snapshot.Nodes {
		if spec.ID == "" {
			return nil, fmt.Errorf("render node without id (name %q)", spec.Name)
		}
		if _, exists := tree.nodes[spec.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, spec.ID)
		}
		node := &types.RenderNode{
			ID:    spec.ID,
			Type:  ownerType(spec.Kind, spec.Name, spec.DisplayName, spec.Inner),
			Props: decodeProps(spec.Props),
		}
		tree.nodes[spec.ID] = node
		tree.order = append(tree.order, node)
	}

	for _, spec := range snapshot.Nodes {
		if spec.Parent == "" {
			continue
		}
		parent, ok := tree.nodes[spec.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: %s (referenced by %s)", ErrUnknownParent, spec.Parent, spec.ID)
		}
		tree.nodes[spec.ID].Parent = parent
	}

	return tree, nil
}

// Node returns a node by id
func (t *Tree) Node(id string) (*types.RenderNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.order)
}

func ownerType(kind, name, displayName string, inner *OwnerSpec) types.OwnerType {
	ot := types.OwnerType{
		Kind:        types.ParseOwnerKind(kind),
		Name:        name,
		DisplayName: displayName,
	}
	if inner != nil {
		wrapped := ownerType(inner.Kind, inner.Name, inner.DisplayName, inner.Inner)
		ot.Inner = &wrapped
	}
	return ot
}

func decodeProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	decoded := make(map[string]any, len(props))
	for k, v := range props {
		decoded[k] = decodeValue(v)
	}
	return decoded
}

func decodeValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		if name, ok := value["$fn"].(string); ok && len(value) == 1 {
			return FuncRef{Name: name}
		}
		return decodeProps(value)
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = decodeValue(item)
		}
		return out
	default:
		return v
	}
}
