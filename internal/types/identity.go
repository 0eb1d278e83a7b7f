package types

// ComponentIdentity is the resolved identity of the component owning a visual element.
//
// Name is never empty and Path always has at least one segment. SourceElement and
// RenderNode are diagnostic references and are never serialized.
type ComponentIdentity struct {
	Name       string         `json:"name" yaml:"name"`
	Path       []string       `json:"path" yaml:"path"`
	Strategy   string         `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	SourceElement Element     `json:"-" yaml:"-"`
	RenderNode    *RenderNode `json:"-" yaml:"-"`
}

// LeafSegment returns the last path segment
func (c *ComponentIdentity) LeafSegment() string {
	if len(c.Path) == 0 {
		return ""
	}
	return c.Path[len(c.Path)-1]
}
