package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/component-resolver/internal/dom"
	"github.com/petrarca/component-resolver/internal/resolver/strategies"
	"github.com/petrarca/component-resolver/internal/rules"
)

func newStrategy(t *testing.T) *Strategy {
	t.Helper()
	h, err := rules.LoadEmbeddedHeuristics()
	require.NoError(t, err)
	return New(strategies.NewToolkit(h))
}

func TestResolve(t *testing.T) {
	s := newStrategy(t)

	tests := []struct {
		name         string
		build        func() *dom.FakeElement
		expectedName string
		expectedPath []string
	}{
		{
			name: "naming attribute on target",
			build: func() *dom.FakeElement {
				return dom.NewFake("button", "data-testid", "submit-button").Under(dom.NewFake("body"))
			},
			expectedName: "SubmitButton",
			expectedPath: []string{"SubmitButton"},
		},
		{
			name: "test id nested inside component class",
			build: func() *dom.FakeElement {
				form := dom.NewFake("div", "class", "UserForm")
				inner := dom.NewFake("fieldset").Under(dom.NewFake("div").Under(dom.NewFake("section").Under(form)))
				return dom.NewFake("button", "data-testid", "SubmitButton").Under(inner)
			},
			expectedName: "SubmitButton",
			expectedPath: []string{"UserForm", "SubmitButton"},
		},
		{
			name: "interactive target under named ancestor",
			build: func() *dom.FakeElement {
				form := dom.NewFake("div", "data-testid", "user-form")
				return dom.NewFake("button").Under(dom.NewFake("div").Under(form))
			},
			expectedName: "UserFormButton",
			expectedPath: []string{"UserForm", "UserFormButton"},
		},
		{
			name: "markup below component-like class",
			build: func() *dom.FakeElement {
				card := dom.NewFake("section", "class", "mt-4 ProfileCard")
				return dom.NewFake("span", "class", "label").Under(dom.NewFake("div").Under(card))
			},
			expectedName: "ProfileCard",
			expectedPath: []string{"ProfileCard", "div", "span.label"},
		},
		{
			name: "outer context from landmark",
			build: func() *dom.FakeElement {
				nav := dom.NewFake("nav")
				menu := dom.NewFake("div", "data-component", "user-menu").Under(nav)
				return dom.NewFake("span").Under(menu)
			},
			expectedName: "UserMenu",
			expectedPath: []string{"Navigation", "UserMenu", "span"},
		},
		{
			name: "bem class token",
			build: func() *dom.FakeElement {
				return dom.NewFake("div", "class", "UserCard__title")
			},
			expectedName: "UserCard",
			expectedPath: []string{"UserCard"},
		},
		{
			name: "aria role",
			build: func() *dom.FakeElement {
				return dom.NewFake("div", "role", "dialog")
			},
			expectedName: "Dialog",
			expectedPath: []string{"Dialog"},
		},
		{
			name: "class marker",
			build: func() *dom.FakeElement {
				return dom.NewFake("div", "class", "search-widget")
			},
			expectedName: "SearchWidget",
			expectedPath: []string{"SearchWidget"},
		},
		{
			name: "duplicate context collapses",
			build: func() *dom.FakeElement {
				outer := dom.NewFake("div", "data-testid", "user-form")
				return dom.NewFake("div", "data-testid", "user-form").Under(outer)
			},
			expectedName: "UserForm",
			expectedPath: []string{"UserForm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.Resolve(tt.build())
			require.NoError(t, err)
			require.NotNil(t, id)
			assert.Equal(t, tt.expectedName, id.Name)
			assert.Equal(t, tt.expectedPath, id.Path)
			assert.Equal(t, "heuristic", id.Strategy)
			assert.Nil(t, id.Attributes)
			assert.Nil(t, id.RenderNode)
		})
	}
}

func TestResolve_Defers(t *testing.T) {
	s := newStrategy(t)

	tests := []struct {
		name string
		el   *dom.FakeElement
	}{
		{name: "utility classes only", el: dom.NewFake("div", "class", "flex p-4 bg-white").Under(dom.NewFake("body"))},
		{name: "plain markup", el: dom.NewFake("span").Under(dom.NewFake("div"))},
		{name: "signal beyond depth bound", el: dom.Chain(dom.NewFake("div", "data-testid", "far-away"), "div", MaxDepth)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.Resolve(tt.el)
			assert.NoError(t, err)
			assert.Nil(t, id)
		})
	}

	id, err := s.Resolve(nil)
	assert.NoError(t, err)
	assert.Nil(t, id)
}

func TestResolve_CyclicParentsTerminate(t *testing.T) {
	s := newStrategy(t)
	a := dom.NewFake("div")
	b := dom.NewFake("div").Under(a)
	a.Up = b

	id, err := s.Resolve(b)
	assert.NoError(t, err)
	assert.Nil(t, id)
}
