// Package heuristic guesses component identities from markup conventions when no
// framework signal is available.
package heuristic

import (
	"github.com/petrarca/component-resolver/internal/constants"
	"github.com/petrarca/component-resolver/internal/resolver/naming"
	"github.com/petrarca/component-resolver/internal/resolver/pathbuilder"
	"github.com/petrarca/component-resolver/internal/resolver/strategies"
	"github.com/petrarca/component-resolver/internal/types"
)

// MaxDepth bounds the ancestor walk
const MaxDepth = 10

// Strategy infers names from naming attributes, component-like classes and semantic markup
type Strategy struct {
	kit *strategies.Toolkit
}

// New creates a heuristic strategy
func New(kit *strategies.Toolkit) *Strategy {
	return &Strategy{kit: kit}
}

// Name returns the strategy name
func (s *Strategy) Name() string {
	return constants.StrategyHeuristic
}

type guess struct {
	index int
	name  string
}

// Resolve walks from el towards the root (at most MaxDepth elements). The nearest element
// yielding a name becomes the trailing component; names guessed further up become the
// outer context. An interactive target below a named ancestor is named after both,
// e.g. "UserForm" + "Button".
func (s *Strategy) Resolve(el types.Element) (*types.ComponentIdentity, error) {
	if el == nil {
		return nil, nil
	}

	var chain []types.Element
	var guesses []guess
	for current := el; current != nil && len(chain) < MaxDepth; current = current.Parent() {
		if name := s.guess(current); name != "" {
			guesses = append(guesses, guess{index: len(chain), name: name})
		}
		chain = append(chain, current)
	}
	if len(guesses) == 0 {
		return nil, nil
	}

	nearest := guesses[0]
	trailing := nearest.name
	var markup []string
	if nearest.index > 0 {
		if label, ok := s.kit.Heuristics.InteractiveTags[el.TagName()]; ok {
			trailing = nearest.name + label
		} else {
			for i := 0; i < nearest.index; i++ {
				if i == 0 {
					markup = append(markup, pathbuilder.TagWithClasses(chain[i]))
				} else {
					markup = append(markup, pathbuilder.Tag(chain[i]))
				}
			}
		}
	}

	components := s.context(guesses, trailing != nearest.name)
	components = append(components, trailing)

	return &types.ComponentIdentity{
		Name:          trailing,
		Path:          pathbuilder.Join(components, pathbuilder.Reverse(markup)),
		Strategy:      constants.StrategyHeuristic,
		SourceElement: el,
	}, nil
}

// context returns the outer names, outermost first. When the trailing component was
// composed from the nearest guess, that guess is kept as context too.
func (s *Strategy) context(guesses []guess, keepNearest bool) []string {
	start := 1
	if keepNearest {
		start = 0
	}

	var outer []string
	for i := len(guesses) - 1; i >= start; i-- {
		name := guesses[i].name
		if n := len(outer); n > 0 && outer[n-1] == name {
			continue
		}
		outer = append(outer, name)
	}
	if n := len(outer); n > 0 && start == 1 && outer[n-1] == guesses[0].name {
		outer = outer[:n-1]
	}
	return outer
}

// guess names a single element: explicit naming attributes first, then component-like
// class tokens, then landmark tags and ARIA roles.
func (s *Strategy) guess(el types.Element) string {
	h := s.kit.Heuristics
	for _, attr := range h.NamingAttrs {
		if v, ok := el.Attr(attr); ok {
			if name := naming.ToIdentifier(v); name != "" {
				return name
			}
		}
	}

	for _, token := range el.Classes() {
		if name, ok := s.kit.Classes.ComponentName(token); ok {
			return name
		}
	}

	if name, ok := h.Landmarks[el.TagName()]; ok {
		return name
	}
	if role, ok := el.Attr("role"); ok {
		if name, ok := h.Roles[role]; ok {
			return name
		}
	}
	return ""
}
