package metadata

import (
	"path/filepath"
	"time"
)

// ResolveMetadata contains information about the resolution run
type ResolveMetadata struct {
	Format      string                 `json:"format" yaml:"format"` // Output format: "full" or "aggregated"
	Timestamp   string                 `json:"timestamp" yaml:"timestamp"`
	HTML        string                 `json:"html" yaml:"html"`
	Tree        string                 `json:"tree,omitempty" yaml:"tree,omitempty"`
	Selector    string                 `json:"selector" yaml:"selector"`
	SpecVersion string                 `json:"specVersion" yaml:"specVersion"` // Output format specification version
	DurationMs  int64                  `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
	Count       int                    `json:"count" yaml:"count"`
	Strategies  []string               `json:"strategies,omitempty" yaml:"strategies,omitempty"` // Active chain, in priority order
	Properties  map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NewResolveMetadata creates a new metadata instance
func NewResolveMetadata(htmlPath, treePath, selector, version string) *ResolveMetadata {
	return &ResolveMetadata{
		Format:      "full",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		HTML:        absPath(htmlPath),
		Tree:        absPath(treePath),
		Selector:    selector,
		SpecVersion: version,
	}
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// SetDuration sets the run duration in milliseconds
func (m *ResolveMetadata) SetDuration(duration time.Duration) {
	m.DurationMs = duration.Milliseconds()
}

// SetCount sets the number of resolved elements
func (m *ResolveMetadata) SetCount(count int) {
	m.Count = count
}

// SetStrategies records the active strategy chain
func (m *ResolveMetadata) SetStrategies(names []string) {
	m.Strategies = names
}

// SetProperties sets custom properties
func (m *ResolveMetadata) SetProperties(properties map[string]interface{}) {
	if len(properties) > 0 {
		m.Properties = properties
	}
}

// SetFormat sets the output format type
func (m *ResolveMetadata) SetFormat(format string) {
	m.Format = format
}
