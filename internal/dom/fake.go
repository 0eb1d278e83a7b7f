package dom

import (
	"strings"

	"github.com/petrarca/component-resolver/internal/types"
)

// FakeElement implements types.Element for testing. Unlike parsed elements it can
// form parent cycles or arbitrarily deep chains, and can be made to panic on access.
type FakeElement struct {
	Tag      string
	Attrs    []types.Attribute
	Content  string
	Up       *FakeElement
	PanicMsg string // when set, every accessor panics with this message
}

// NewFake creates a fake element with key/value attribute pairs
func NewFake(tag string, kv ...string) *FakeElement {
	el := &FakeElement{Tag: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		el.Attrs = append(el.Attrs, types.Attribute{Key: kv[i], Value: kv[i+1]})
	}
	return el
}

// Under sets the parent and returns the receiver
func (f *FakeElement) Under(parent *FakeElement) *FakeElement {
	f.Up = parent
	return f
}

// WithText sets the text content and returns the receiver
func (f *FakeElement) WithText(text string) *FakeElement {
	f.Content = text
	return f
}

// Chain builds a linear ancestor chain of depth fakes below top and returns the deepest one
func Chain(top *FakeElement, tag string, depth int) *FakeElement {
	current := top
	for i := 0; i < depth; i++ {
		current = NewFake(tag).Under(current)
	}
	return current
}

func (f *FakeElement) check() {
	if f.PanicMsg != "" {
		panic(f.PanicMsg)
	}
}

func (f *FakeElement) TagName() string {
	f.check()
	return strings.ToLower(f.Tag)
}

func (f *FakeElement) ID() string {
	id, _ := f.Attr("id")
	return id
}

func (f *FakeElement) Classes() []string {
	class, _ := f.Attr("class")
	return strings.Fields(class)
}

func (f *FakeElement) Attr(key string) (string, bool) {
	f.check()
	for _, a := range f.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (f *FakeElement) Attributes() []types.Attribute {
	f.check()
	return f.Attrs
}

func (f *FakeElement) Text() string {
	f.check()
	return f.Content
}

func (f *FakeElement) Parent() types.Element {
	f.check()
	if f.Up == nil {
		return nil
	}
	return f.Up
}

var _ types.Element = (*FakeElement)(nil)
