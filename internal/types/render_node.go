package types

import "strings"

// OwnerKind discriminates the shapes a render-tree owner can take
type OwnerKind int

const (
	KindUnknown OwnerKind = iota
	KindHost
	KindFunction
	KindClass
	KindForwardRef
	KindMemo
	KindLazy
	KindSuspense
	KindFragment
	KindContextProvider
	KindContextConsumer
)

var ownerKindNames = map[OwnerKind]string{
	KindUnknown:         "unknown",
	KindHost:            "host",
	KindFunction:        "function",
	KindClass:           "class",
	KindForwardRef:      "forward_ref",
	KindMemo:            "memo",
	KindLazy:            "lazy",
	KindSuspense:        "suspense",
	KindFragment:        "fragment",
	KindContextProvider: "context_provider",
	KindContextConsumer: "context_consumer",
}

// String returns the snapshot spelling of the kind
func (k OwnerKind) String() string {
	if name, ok := ownerKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseOwnerKind converts a snapshot spelling to an OwnerKind.
// Hyphens and case are ignored; unrecognised values map to KindUnknown.
func ParseOwnerKind(s string) OwnerKind {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch normalized {
	case "forwardref":
		return KindForwardRef
	case "provider":
		return KindContextProvider
	case "consumer":
		return KindContextConsumer
	}
	for kind, name := range ownerKindNames {
		if name == normalized {
			return kind
		}
	}
	return KindUnknown
}

// OwnerType is what a render node is an instance of
type OwnerType struct {
	Kind        OwnerKind
	Name        string     // function, class or constructor name; tag name for host nodes
	DisplayName string     // explicit override, wins over Name when set
	Inner       *OwnerType // wrapped type for forward-ref and memo wrappers
}

// RenderNode is a node of the host framework's internal tree.
// The tree is not necessarily 1:1 with the visual tree and may be malformed (cycles).
type RenderNode struct {
	ID     string
	Type   OwnerType
	Parent *RenderNode
	Props  map[string]any
}
