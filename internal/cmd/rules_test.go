package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/component-resolver/internal/types"
)

func TestRules_JSON(t *testing.T) {
	stdout, _, err := execute(newRulesCommand(), "-f", "json")
	require.NoError(t, err)

	var h types.Heuristics
	require.NoError(t, json.Unmarshal([]byte(stdout), &h))
	assert.Equal(t, "embedded", h.Name)
	assert.Contains(t, h.RootWrappers, "App")
	assert.NotEmpty(t, h.NamingAttrs)
}

func TestRules_Text(t *testing.T) {
	stdout, _, err := execute(newRulesCommand())
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrappers (")
	assert.Contains(t, stdout, "Root wrappers (")
	assert.Contains(t, stdout, "Landmarks (")
}

func TestRules_ProjectAndExternalDirectory(t *testing.T) {
	rulesDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(rulesDir, "team.yaml"), []byte("name: team\nwrappers: [TeamShell]\n"), 0644))

	projectDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, ".component-resolver.yml"), []byte("heuristics:\n  naming_attributes: [data-qa]\n"), 0644))

	stdout, _, err := execute(newRulesCommand(), "-f", "json", "--rules", rulesDir, "--project", projectDir)
	require.NoError(t, err)

	var h types.Heuristics
	require.NoError(t, json.Unmarshal([]byte(stdout), &h))
	assert.Contains(t, h.Wrappers, "TeamShell")
	assert.Contains(t, h.NamingAttrs, "data-qa")
}

func TestRules_Validate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	project := filepath.Join(dir, ".component-resolver.yml")
	require.NoError(t, os.WriteFile(good, []byte("name: good\nwrappers: [Shell]\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("name: bad\nwrappers: Shell\n"), 0644))
	require.NoError(t, os.WriteFile(project, []byte("attach_attribute: data-fiber\n"), 0644))

	stdout, _, err := execute(newRulesCommand(), "validate", good, project)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+good)
	assert.Contains(t, stdout, "✓ "+project)

	stdout, _, err = execute(newRulesCommand(), "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed validation")
	assert.Contains(t, stdout, "✗ "+bad)
}

func TestRules_Schemas(t *testing.T) {
	stdout, _, err := execute(newRulesCommand(), "schemas")
	require.NoError(t, err)
	assert.Contains(t, stdout, "heuristics.json")
	assert.Contains(t, stdout, "component-resolver-yml.json")
}

func TestRender_CSVUnsupported(t *testing.T) {
	_, err := Render(&heuristicsOutput{heuristics: &types.Heuristics{}}, "csv", true)
	assert.Error(t, err)
}

func TestRender_CompactJSON(t *testing.T) {
	data, err := Render(&heuristicsOutput{heuristics: &types.Heuristics{Name: "x"}}, "json", false)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"x"}`, string(data))
}

func TestStylesFor_PlainOnBuffers(t *testing.T) {
	st := stylesFor(&bytes.Buffer{})
	assert.False(t, st.enabled)
	assert.Equal(t, "Heading", st.Heading("Heading"))
}
