package spec

const (
	// Version represents the report format specification version.
	// It should be updated when breaking changes are made to the report structure.
	Version = "1.0"
)
