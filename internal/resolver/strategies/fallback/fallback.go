// Package fallback synthesizes a descriptive identity from raw element characteristics.
// It is the last tier of the chain and always produces a result.
package fallback

import (
	"fmt"
	"strings"

	"github.com/petrarca/component-resolver/internal/constants"
	"github.com/petrarca/component-resolver/internal/resolver/naming"
	"github.com/petrarca/component-resolver/internal/resolver/pathbuilder"
	"github.com/petrarca/component-resolver/internal/resolver/strategies"
	"github.com/petrarca/component-resolver/internal/types"
)

const (
	// MaxDepth bounds the ancestor walk, target included
	MaxDepth = 5

	maxDescription = 30
)

// Strategy describes the element itself
type Strategy struct {
	kit *strategies.Toolkit
}

// New creates a fallback strategy
func New(kit *strategies.Toolkit) *Strategy {
	return &Strategy{kit: kit}
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return constants.StrategyFallback
}

// Resolve never defers and never fails. If inspecting the element panics, the minimal
// identity from Minimal is returned instead.
func (s *Strategy) Resolve(el types.Element) (id *types.ComponentIdentity, err error) {
	defer func() {
		if r := recover(); r != nil {
			id, err = Minimal(el), nil
		}
	}()

	if el == nil {
		return Minimal(nil), nil
	}

	return &types.ComponentIdentity{
		Name:          s.name(el),
		Path:          s.path(el),
		Strategy:      constants.StrategyFallback,
		Attributes:    pathbuilder.ElementAttributes(el),
		SourceElement: el,
	}, nil
}

// Minimal returns the literal identity used when nothing can be inspected safely:
// name "Unknown Component", path ["Unknown", "<tag>.<classes>"].
func Minimal(el types.Element) *types.ComponentIdentity {
	return &types.ComponentIdentity{
		Name:          constants.UnknownComponent,
		Path:          []string{constants.UnknownSegment, safeSegment(el)},
		Strategy:      constants.StrategyFallback,
		SourceElement: el,
	}
}

func safeSegment(el types.Element) (segment string) {
	defer func() {
		if recover() != nil {
			segment = "element"
		}
	}()
	if el == nil {
		return "element"
	}
	return pathbuilder.TagWithClasses(el)
}

// name picks, in order: the id, the first meaningful class, a short semantic description.
func (s *Strategy) name(el types.Element) string {
	tag := pathbuilder.Tag(el)
	if id := el.ID(); id != "" {
		return fmt.Sprintf("%s (%s#%s)", constants.UnknownComponent, tag, naming.Truncate(id, maxDescription))
	}
	for _, c := range el.Classes() {
		if s.kit.Classes.Meaningful(c) {
			return fmt.Sprintf("%s (%s.%s)", constants.UnknownComponent, tag, naming.Truncate(c, maxDescription))
		}
	}
	if desc := describe(el); desc != "" {
		return fmt.Sprintf("%s (%s: %s)", constants.UnknownComponent, tag, desc)
	}
	return constants.UnknownComponent
}

// describe returns a quoted semantic description: the ARIA label, the text of buttons and
// links, or the placeholder of form fields.
func describe(el types.Element) string {
	if label, ok := el.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
		return naming.Quote(label, maxDescription)
	}

	switch el.TagName() {
	case "button", "a":
		if text := strings.Join(strings.Fields(el.Text()), " "); text != "" {
			return naming.Quote(text, maxDescription)
		}
	case "input", "textarea", "select":
		if placeholder, ok := el.Attr("placeholder"); ok && strings.TrimSpace(placeholder) != "" {
			return naming.Quote(placeholder, maxDescription)
		}
		if value, ok := el.Attr("value"); ok && strings.TrimSpace(value) != "" && el.TagName() == "input" {
			return naming.Quote(value, maxDescription)
		}
	}
	return ""
}

// path climbs at most MaxDepth elements, stopping below the document structure tags or
// at an ancestor that looks like a component root. The root segment is that ancestor's
// guessed name, or "Unknown".
func (s *Strategy) path(el types.Element) []string {
	segments := []string{pathbuilder.Describe(el)}
	root := constants.UnknownSegment

	current := el.Parent()
	for depth := 1; current != nil && depth < MaxDepth; depth++ {
		if s.isDocumentTag(current.TagName()) {
			break
		}
		if name, ok := s.componentRoot(current); ok {
			root = name
			break
		}
		segments = append(segments, pathbuilder.Tag(current))
		current = current.Parent()
	}

	return pathbuilder.Join([]string{root}, pathbuilder.Reverse(segments))
}

func (s *Strategy) isDocumentTag(tag string) bool {
	for _, t := range s.kit.Heuristics.DocumentTags {
		if t == tag {
			return true
		}
	}
	return false
}

// componentRoot reports whether el looks like the root of a component and what to call it
func (s *Strategy) componentRoot(el types.Element) (string, bool) {
	for _, attr := range s.kit.Heuristics.ComponentAttrs {
		if v, ok := el.Attr(attr); ok {
			if name := naming.ToIdentifier(v); name != "" {
				return name, true
			}
		}
	}
	if name, ok := s.kit.Heuristics.Landmarks[el.TagName()]; ok {
		return name, true
	}
	for _, token := range el.Classes() {
		if name, ok := s.kit.Classes.ComponentName(token); ok {
			return name, true
		}
	}
	return "", false
}
