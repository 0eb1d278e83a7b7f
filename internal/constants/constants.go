package constants

// Strategy names, in chain priority order. They are reported in ComponentIdentity.Strategy.
const (
	// StrategyDevTools resolves through the framework's global introspection hook
	StrategyDevTools = "devtools"

	// StrategyWalker walks the render node attached to the element
	StrategyWalker = "walker"

	// StrategyHeuristic guesses from markup conventions
	StrategyHeuristic = "heuristic"

	// StrategyFallback synthesizes a descriptive identity from raw element characteristics
	StrategyFallback = "fallback"
)

// Literal names used when nothing better is known
const (
	UnknownComponent = "Unknown Component"
	UnknownSegment   = "Unknown"
	GenericComponent = "Component"
)
