package naming

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/petrarca/component-resolver/internal/types"
)

// ClassMatcher classifies class tokens as utility classes or component-like identifiers
type ClassMatcher struct {
	utility []string
	markers []string
}

// NewClassMatcher builds a matcher from the utility globs and class markers of h
func NewClassMatcher(h *types.Heuristics) *ClassMatcher {
	m := &ClassMatcher{}
	if h == nil {
		return m
	}
	for _, pattern := range h.UtilityClasses {
		if doublestar.ValidatePattern(pattern) {
			m.utility = append(m.utility, pattern)
		}
	}
	for _, marker := range h.ClassMarkers {
		m.markers = append(m.markers, strings.ToLower(marker))
	}
	return m
}

// IsUtility reports whether token matches a utility-class shape (spacing, color, layout, state).
// Class tokens are not paths: "/" is matched as an ordinary character, so "w-*" covers "w-1/2".
func (m *ClassMatcher) IsUtility(token string) bool {
	flat := strings.ReplaceAll(token, "/", "_")
	for _, pattern := range m.utility {
		if ok, _ := doublestar.Match(pattern, flat); ok {
			return true
		}
	}
	return false
}

// Meaningful reports whether token can describe an element: not a utility class,
// at least three characters and not a bare hash.
func (m *ClassMatcher) Meaningful(token string) bool {
	if len(token) < 3 || m.IsUtility(token) {
		return false
	}
	return strings.IndexFunc(token, isLetter) >= 0
}

// HasMarker reports whether token contains one of the component markers ("component", "widget", "module")
func (m *ClassMatcher) HasMarker(token string) bool {
	lower := strings.ToLower(token)
	for _, marker := range m.markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ComponentName returns the component identifier a class token suggests.
// PascalCase tokens are used as-is after stripping BEM and CSS-module suffixes
// ("UserCard__title" and "UserCard_root__x7a9" both give "UserCard"); tokens carrying a
// component marker are converted to identifier form.
func (m *ClassMatcher) ComponentName(token string) (string, bool) {
	if token == "" || m.IsUtility(token) {
		return "", false
	}

	base := token
	if i := strings.IndexAny(base, "_-"); i > 0 {
		base = base[:i]
	}
	if IsPascalCase(base) {
		return base, true
	}

	if m.HasMarker(token) {
		if name := ToIdentifier(token); name != "" {
			return name, true
		}
	}
	return "", false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
