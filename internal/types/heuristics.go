package types

// Heuristics holds the tables the resolver strategies consult.
// Each embedded rule file contributes a subset of the sections; Merge combines them.
type Heuristics struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Infrastructure wrappers never surfaced as a resolved owner
	Wrappers        []string          `yaml:"wrappers,omitempty" json:"wrappers,omitempty"`
	WrapperSubstrs  []string          `yaml:"wrapper_substrings,omitempty" json:"wrapper_substrings,omitempty"`
	RootWrappers    []string          `yaml:"root_wrappers,omitempty" json:"root_wrappers,omitempty"`
	NamingAttrs     []string          `yaml:"naming_attributes,omitempty" json:"naming_attributes,omitempty"`
	ComponentAttrs  []string          `yaml:"component_attributes,omitempty" json:"component_attributes,omitempty"`
	UtilityClasses  []string          `yaml:"utility_classes,omitempty" json:"utility_classes,omitempty"` // doublestar globs
	ClassMarkers    []string          `yaml:"class_markers,omitempty" json:"class_markers,omitempty"`
	UnsafeProps     []string          `yaml:"unsafe_props,omitempty" json:"unsafe_props,omitempty"`
	DocumentTags    []string          `yaml:"document_tags,omitempty" json:"document_tags,omitempty"`
	Landmarks       map[string]string `yaml:"landmarks,omitempty" json:"landmarks,omitempty"`
	Roles           map[string]string `yaml:"roles,omitempty" json:"roles,omitempty"`
	InteractiveTags map[string]string `yaml:"interactive_tags,omitempty" json:"interactive_tags,omitempty"`
}

// Merge folds other into h. List entries are appended without duplicates,
// map entries from other override existing keys.
func (h *Heuristics) Merge(other *Heuristics) {
	if other == nil {
		return
	}
	h.Wrappers = appendUnique(h.Wrappers, other.Wrappers...)
	h.WrapperSubstrs = appendUnique(h.WrapperSubstrs, other.WrapperSubstrs...)
	h.RootWrappers = appendUnique(h.RootWrappers, other.RootWrappers...)
	h.NamingAttrs = appendUnique(h.NamingAttrs, other.NamingAttrs...)
	h.ComponentAttrs = appendUnique(h.ComponentAttrs, other.ComponentAttrs...)
	h.UtilityClasses = appendUnique(h.UtilityClasses, other.UtilityClasses...)
	h.ClassMarkers = appendUnique(h.ClassMarkers, other.ClassMarkers...)
	h.UnsafeProps = appendUnique(h.UnsafeProps, other.UnsafeProps...)
	h.DocumentTags = appendUnique(h.DocumentTags, other.DocumentTags...)
	h.Landmarks = mergeMap(h.Landmarks, other.Landmarks)
	h.Roles = mergeMap(h.Roles, other.Roles)
	h.InteractiveTags = mergeMap(h.InteractiveTags, other.InteractiveTags)
}

func appendUnique(dst []string, values ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		dst = append(dst, v)
	}
	return dst
}

func mergeMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
