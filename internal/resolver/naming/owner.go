package naming

import "github.com/petrarca/component-resolver/internal/types"

const (
	anonymousSentinel = "Anonymous"
	objectSentinel    = "Object"
)

// OwnerName extracts a display name from an owner type.
// Host and unrecognised owners have no name and yield "".
func OwnerName(t types.OwnerType) string {
	switch t.Kind {
	case types.KindFunction:
		return firstUsable(anonymousSentinel, t.DisplayName, t.Name)
	case types.KindClass:
		return firstUsable(objectSentinel, t.DisplayName, t.Name)
	case types.KindForwardRef:
		return wrapperName("ForwardRef", t)
	case types.KindMemo:
		return wrapperName("Memo", t)
	case types.KindLazy:
		return "Lazy"
	case types.KindSuspense:
		return "Suspense"
	case types.KindFragment:
		return "Fragment"
	case types.KindContextProvider:
		return "Context.Provider"
	case types.KindContextConsumer:
		return "Context.Consumer"
	default:
		return ""
	}
}

// NearestOwner returns the first node, starting at node itself and following parents
// for at most maxHops nodes, whose owner has a name.
func NearestOwner(node *types.RenderNode, maxHops int) (*types.RenderNode, string) {
	for hops := 0; node != nil && hops < maxHops; hops++ {
		if name := OwnerName(node.Type); name != "" {
			return node, name
		}
		node = node.Parent
	}
	return nil, ""
}

func wrapperName(label string, t types.OwnerType) string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	if t.Inner != nil {
		if inner := OwnerName(*t.Inner); inner != "" {
			return label + "(" + inner + ")"
		}
	}
	return label
}

func firstUsable(sentinel string, candidates ...string) string {
	for _, c := range candidates {
		if c != "" && c != sentinel {
			return c
		}
	}
	return ""
}
