package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petrarca/component-resolver/internal/types"
)

func fn(name string, parent *types.RenderNode) *types.RenderNode {
	return &types.RenderNode{ID: name, Type: types.OwnerType{Kind: types.KindFunction, Name: name}, Parent: parent}
}

func TestNearestAcceptedOwner(t *testing.T) {
	kit := NewToolkit(&types.Heuristics{
		Wrappers:     []string{"ErrorBoundary"},
		RootWrappers: []string{"App"},
	})

	app := fn("App", nil)
	form := fn("UserForm", app)
	boundary := fn("ErrorBoundary", form)
	host := &types.RenderNode{ID: "div", Type: types.OwnerType{Kind: types.KindHost, Name: "div"}, Parent: boundary}

	owner, name := kit.NearestAcceptedOwner(host, 10)
	assert.Same(t, form, owner)
	assert.Equal(t, "UserForm", name)

	owner, name = kit.NearestAcceptedOwner(fn("ErrorBoundary", app), 10)
	assert.Same(t, app, owner, "root wrappers are acceptable owners")
	assert.Equal(t, "App", name)

	owner, _ = kit.NearestAcceptedOwner(host, 2)
	assert.Nil(t, owner, "walk is bounded")

	a := fn("ErrorBoundary", nil)
	b := fn("ErrorBoundary", a)
	a.Parent = b
	owner, _ = kit.NearestAcceptedOwner(a, 10)
	assert.Nil(t, owner, "cycles terminate")
}

func TestNewToolkit_NilHeuristics(t *testing.T) {
	kit := NewToolkit(nil)
	assert.NotNil(t, kit.Heuristics)
	assert.True(t, kit.Filter.Accepts("Anything"))
	assert.False(t, kit.Classes.IsUtility("p-4"))
}
