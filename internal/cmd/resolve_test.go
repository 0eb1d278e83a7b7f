package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/petrarca/component-resolver/internal/types"
)

const pageHTML = `<html><body>
<form data-render-id="form-host"><button data-render-id="btn-host">Save</button></form>
<aside><button class="close">x</button></aside>
</body></html>`

const treeYAML = `
nodes:
  - {id: app, kind: function, name: App}
  - {id: form, kind: class, name: UserForm, parent: app}
  - {id: form-host, kind: host, name: form, parent: form}
  - {id: submit, kind: function, name: SubmitButton, parent: form}
  - {id: btn-host, kind: host, name: button, parent: submit}
  - {id: tracked, kind: function, name: TrackedButton, parent: form}
devtools:
  direct: true
  renderers:
    - bindings:
        "form > button": tracked
`

// snapshots writes the page and tree into a temp dir and returns their paths
func snapshots(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "page.html")
	treePath := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(htmlPath, []byte(pageHTML), 0644))
	require.NoError(t, os.WriteFile(treePath, []byte(treeYAML), 0644))
	return htmlPath, treePath
}

func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeReport(t *testing.T, data string) *types.Report {
	t.Helper()
	var report types.Report
	require.NoError(t, json.Unmarshal([]byte(data), &report))
	return &report
}

func TestResolve_AllInDocumentOrder(t *testing.T) {
	htmlPath, treePath := snapshots(t)

	stdout, _, err := execute(newResolveCommand(), "--html", htmlPath, "--tree", treePath, "--selector", "button", "--all")
	require.NoError(t, err)

	report := decodeReport(t, stdout)
	assert.NotEmpty(t, report.ID)
	require.Len(t, report.Results, 2)

	first, second := report.Results[0], report.Results[1]
	assert.Equal(t, "devtools", first.Strategy)
	assert.Equal(t, "TrackedButton", first.Name)
	assert.Equal(t, "button", first.Target)
	assert.NotEmpty(t, first.Fingerprint)

	assert.Equal(t, "heuristic", second.Strategy)
	assert.Equal(t, []string{"Sidebar", "SidebarButton"}, second.Path)
	assert.Equal(t, "button.close", second.Target)

	meta, ok := report.Metadata.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "full", meta["format"])
	assert.Equal(t, float64(2), meta["count"])
	assert.Equal(t, []interface{}{"devtools", "walker", "heuristic", "fallback"}, meta["strategies"])
}

func TestResolve_NoDevToolsUsesWalker(t *testing.T) {
	htmlPath, treePath := snapshots(t)

	stdout, _, err := execute(newResolveCommand(), "--html", htmlPath, "--tree", treePath, "-s", "form > button", "--no-devtools")
	require.NoError(t, err)

	report := decodeReport(t, stdout)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "walker", report.Results[0].Strategy)
	assert.Equal(t, []string{"UserForm", "SubmitButton"}, report.Results[0].Path)
}

func TestResolve_WithoutTreeFallsBackToMarkup(t *testing.T) {
	htmlPath, _ := snapshots(t)

	stdout, _, err := execute(newResolveCommand(), "--html", htmlPath, "-s", "aside button")
	require.NoError(t, err)

	report := decodeReport(t, stdout)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "heuristic", report.Results[0].Strategy)
	assert.Equal(t, "SidebarButton", report.Results[0].Name)
}

func TestResolve_Aggregate(t *testing.T) {
	htmlPath, treePath := snapshots(t)

	stdout, _, err := execute(newResolveCommand(), "--html", htmlPath, "--tree", treePath, "-s", "button", "--all", "--aggregate", "names,strategies")
	require.NoError(t, err)

	var out struct {
		Metadata   map[string]interface{} `json:"metadata"`
		Names      []string               `json:"names"`
		Strategies map[string]int         `json:"strategies"`
		Paths      []string               `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "aggregated", out.Metadata["format"])
	assert.Equal(t, []string{"SidebarButton", "TrackedButton"}, out.Names)
	assert.Equal(t, map[string]int{"devtools": 1, "heuristic": 1}, out.Strategies)
	assert.Empty(t, out.Paths)
}

func TestResolve_YAMLAndText(t *testing.T) {
	htmlPath, treePath := snapshots(t)

	stdout, _, err := execute(newResolveCommand(), "--html", htmlPath, "--tree", treePath, "-s", "button", "-f", "YAML")
	require.NoError(t, err)

	var report struct {
		Results []map[string]interface{} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "TrackedButton", report.Results[0]["name"])
	assert.Equal(t, "devtools", report.Results[0]["strategy"])

	stdout, _, err = execute(newResolveCommand(), "--html", htmlPath, "--tree", treePath, "-s", "button", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Resolution")
	assert.Contains(t, stdout, "name:      TrackedButton")
	assert.Contains(t, stdout, "strategy:  devtools")
}

func TestResolve_CSVInferredFromOutputFile(t *testing.T) {
	htmlPath, treePath := snapshots(t)
	outPath := filepath.Join(t.TempDir(), "components.csv")

	stdout, stderr, err := execute(newResolveCommand(), "--html", htmlPath, "--tree", treePath, "-s", "button", "--all", "-o", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Results written to "+outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"target", "name", "path", "strategy", "fingerprint"}, rows[0])
	assert.Equal(t, "devtools", rows[1][3])
	assert.Equal(t, "Sidebar > SidebarButton", rows[2][2])
}

func TestResolve_VerboseProgress(t *testing.T) {
	htmlPath, treePath := snapshots(t)

	_, stderr, err := execute(newResolveCommand(), "--html", htmlPath, "--tree", treePath, "-s", "button", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[RUN]  Starting: "+htmlPath)
	assert.Contains(t, stderr, "[INIT] Heuristics loaded: 1 (embedded)")
	assert.Contains(t, stderr, "[STRAT] ✓ MATCHED: devtools - TrackedButton")
	assert.NotContains(t, stderr, "[STRAT] Trying")
}

func TestResolve_JobFile(t *testing.T) {
	htmlPath, treePath := snapshots(t)
	jobPath := filepath.Join(t.TempDir(), "job.yaml")
	job := "resolve:\n" +
		"  html: " + htmlPath + "\n" +
		"  tree: " + treePath + "\n" +
		"  selector: button\n" +
		"  all: true\n" +
		"  output:\n    aggregate: strategies\n"
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0644))

	stdout, _, err := execute(newResolveCommand(), "--config", jobPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"strategies"`)
	assert.Contains(t, stdout, `"heuristic": 1`)

	// Flags win over the job
	stdout, _, err = execute(newResolveCommand(), "--config", jobPath, "-s", "aside button")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"heuristic": 1`)
	assert.NotContains(t, stdout, `"devtools"`)
}

func TestResolve_Errors(t *testing.T) {
	htmlPath, treePath := snapshots(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing html", []string{"-s", "button"}, "--html"},
		{"missing selector", []string{"--html", htmlPath}, "--selector"},
		{"verbose and debug", []string{"--html", htmlPath, "-s", "button", "-v", "-d"}, "--verbose and --debug"},
		{"bad format", []string{"--html", htmlPath, "-s", "button", "-f", "xml"}, "invalid format"},
		{"bad aggregate", []string{"--html", htmlPath, "-s", "button", "--aggregate", "colors"}, "invalid aggregate field"},
		{"bad log level", []string{"--html", htmlPath, "-s", "button", "--log-level", "loud"}, "invalid log level"},
		{"no match", []string{"--html", htmlPath, "--tree", treePath, "-s", "table"}, "table"},
		{"invalid selector", []string{"--html", htmlPath, "-s", "[[["}, "[[["},
		{"missing snapshot", []string{"--html", htmlPath + ".missing", "-s", "button"}, "failed to read DOM snapshot"},
		{"bad concurrency", []string{"--html", htmlPath, "-s", "button", "--concurrency", "0"}, "concurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(newResolveCommand(), tt.args...)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should mention %q", err, tt.wantErr)
		})
	}
}
