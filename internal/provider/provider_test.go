package provider

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/component-resolver/internal/types"
)

var (
	_ types.Provider = (*FSProvider)(nil)
	_ types.Provider = (*FakeProvider)(nil)
)

func TestFSProvider(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("<p>hi</p>"), 0644))

	p := NewFSProvider(dir + "/")
	assert.Equal(t, dir, p.GetBasePath())

	content, err := p.ReadFile("page.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(content))

	content, err = p.ReadFile(filepath.Join(dir, "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(content))

	exists, err := p.Exists("page.html")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = p.Exists("tree.yaml")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = p.Exists(".")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = p.ReadFile("tree.yaml")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFakeProvider(t *testing.T) {
	p := NewFakeProvider()
	p.AddFile("snapshots/page.html", "<div></div>")

	content, err := p.ReadFile("snapshots/./page.html")
	require.NoError(t, err)
	assert.Equal(t, "<div></div>", string(content))

	exists, _ := p.Exists("snapshots/page.html")
	assert.True(t, exists)

	_, err = p.ReadFile("missing.html")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "/", p.GetBasePath())
}
