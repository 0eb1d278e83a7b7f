package provider

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// FakeProvider serves in-memory files for testing
type FakeProvider struct {
	basePath string
	content  map[string][]byte
}

// NewFakeProvider creates a new fake provider
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		basePath: "/",
		content:  make(map[string][]byte),
	}
}

// AddFile adds a file to the fake provider
func (p *FakeProvider) AddFile(path, content string) {
	p.content[filepath.Clean(path)] = []byte(content)
}

// ReadFile reads file content as bytes
func (p *FakeProvider) ReadFile(path string) ([]byte, error) {
	content, exists := p.content[filepath.Clean(path)]
	if !exists {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

// Exists checks if a file exists
func (p *FakeProvider) Exists(path string) (bool, error) {
	_, exists := p.content[filepath.Clean(path)]
	return exists, nil
}

// GetBasePath returns the base path for this provider
func (p *FakeProvider) GetBasePath() string {
	return p.basePath
}
