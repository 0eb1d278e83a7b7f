package types

// Report is the envelope written by the resolve command
type Report struct {
	ID       string            `json:"id" yaml:"id"`
	Metadata interface{}       `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Results  []ResolvedElement `json:"results" yaml:"results"`
}

// ResolvedElement pairs a targeted element with its resolved identity
type ResolvedElement struct {
	Target            string `json:"target" yaml:"target"`           // Markup description of the element
	Fingerprint       string `json:"fingerprint" yaml:"fingerprint"` // Stable hash of name and path
	ComponentIdentity `yaml:",inline"`
}

// NewResolvedElement builds a result entry for id
func NewResolvedElement(target string, id *ComponentIdentity) ResolvedElement {
	return ResolvedElement{
		Target:            target,
		Fingerprint:       IdentityFingerprint(id.Name, id.Path),
		ComponentIdentity: *id,
	}
}
