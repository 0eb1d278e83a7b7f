package types

// Provider defines the interface for reading snapshot and configuration files
type Provider interface {
	// ReadFile reads file content as bytes
	ReadFile(path string) ([]byte, error)

	// Exists checks if a file or directory exists
	Exists(path string) (bool, error)

	// GetBasePath returns the base path for this provider
	GetBasePath() string
}
