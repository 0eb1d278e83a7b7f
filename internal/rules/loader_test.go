package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedHeuristics(t *testing.T) {
	h, err := LoadEmbeddedHeuristics()
	require.NoError(t, err)

	assert.Contains(t, h.Wrappers, "ErrorBoundary")
	assert.Contains(t, h.Wrappers, "StrictMode")
	assert.Equal(t, []string{"Provider", "Context"}, h.WrapperSubstrs)
	assert.Equal(t, []string{"App", "Root"}, h.RootWrappers)
	assert.Equal(t, "data-component", h.NamingAttrs[0], "explicit component attribute has priority")
	assert.Contains(t, h.NamingAttrs, "data-testid")
	assert.Contains(t, h.UtilityClasses, "bg-*")
	assert.Contains(t, h.UnsafeProps, "dangerouslySetInnerHTML")
	assert.Equal(t, "Navigation", h.Landmarks["nav"])
	assert.Equal(t, "Dialog", h.Roles["dialog"])
	assert.Equal(t, "Link", h.InteractiveTags["a"])
	assert.Equal(t, []string{"html", "head", "body"}, h.DocumentTags)
}

func TestLoad_MergesExternalDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `name: project
wrappers:
  - AnalyticsBoundary
landmarks:
  nav: TopBar
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.yaml"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0644))

	h, err := Load(dir)
	require.NoError(t, err)

	assert.Contains(t, h.Wrappers, "AnalyticsBoundary")
	assert.Contains(t, h.Wrappers, "ErrorBoundary", "embedded entries are kept")
	assert.Equal(t, "TopBar", h.Landmarks["nav"], "external map entries override embedded ones")
}

func TestLoadExternalHeuristics_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("wrappers: not-a-list\n"), 0644))

	_, err := LoadExternalHeuristics(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid heuristics in")
}

func TestLoad_MissingExternalDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
