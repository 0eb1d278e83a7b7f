package naming

import (
	"strings"

	"github.com/petrarca/component-resolver/internal/types"
)

// WrapperFilter recognises infrastructure wrapper names that must never surface
// as a resolved owner, and root wrappers that are kept only when nothing else is left.
type WrapperFilter struct {
	deny    map[string]bool
	substrs []string
	roots   map[string]bool
}

// NewWrapperFilter builds a filter from the wrapper sections of h
func NewWrapperFilter(h *types.Heuristics) *WrapperFilter {
	f := &WrapperFilter{
		deny:  make(map[string]bool),
		roots: make(map[string]bool),
	}
	if h == nil {
		return f
	}
	for _, name := range h.Wrappers {
		f.deny[name] = true
	}
	for _, name := range h.RootWrappers {
		f.roots[name] = true
	}
	f.substrs = append(f.substrs, h.WrapperSubstrs...)
	return f
}

// IsWrapper reports whether name belongs to the infrastructure deny-list
func (f *WrapperFilter) IsWrapper(name string) bool {
	if f.deny[name] {
		return true
	}
	for _, s := range f.substrs {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// IsRootWrapper reports whether name is an application root wrapper such as "App"
func (f *WrapperFilter) IsRootWrapper(name string) bool {
	return f.roots[name]
}

// Accepts reports whether name can stand as a resolved owner on its own
func (f *WrapperFilter) Accepts(name string) bool {
	return name != "" && !f.IsWrapper(name)
}

// Apply removes wrapper names from segments (ordered outermost first).
// Root wrappers are dropped too, unless no other segment would remain, in which case
// the innermost root wrapper is kept as the sole segment.
func (f *WrapperFilter) Apply(segments []string) []string {
	var kept []string
	var root string
	for _, s := range segments {
		switch {
		case s == "" || f.IsWrapper(s):
		case f.IsRootWrapper(s):
			root = s
		default:
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 && root != "" {
		return []string{root}
	}
	return kept
}
