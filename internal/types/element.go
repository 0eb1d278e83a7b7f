package types

// Attribute is a single markup attribute of a visual element
type Attribute struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Element is a read-only handle to one node of the rendered visual tree.
// Implementations are owned by the host environment; the resolver never mutates them.
type Element interface {
	// TagName returns the lower-case tag name (e.g., "div", "button")
	TagName() string

	// ID returns the id attribute, or "" when absent
	ID() string

	// Classes returns the class tokens in document order
	Classes() []string

	// Attr returns the value of the named attribute and whether it is present
	Attr(key string) (string, bool)

	// Attributes returns all attributes in document order
	Attributes() []Attribute

	// Text returns the whitespace-collapsed text content
	Text() string

	// Parent returns the parent element, or nil at the tree root
	Parent() Element
}
