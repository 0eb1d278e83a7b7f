package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/component-resolver/internal/metadata"
	"github.com/petrarca/component-resolver/internal/types"
)

func sampleReport() *types.Report {
	results := []struct {
		target   string
		name     string
		path     []string
		strategy string
	}{
		{"button#save", "SubmitButton", []string{"UserForm", "SubmitButton"}, "walker"},
		{"button#cancel", "SubmitButton", []string{"UserForm", "SubmitButton"}, "walker"},
		{"span.total", "OrderSummary", []string{"OrderSummary", "p", "span.total"}, "heuristic"},
		{"div", "Unknown Component", []string{"Unknown", "div"}, "fallback"},
	}

	report := &types.Report{
		ID:       "abc",
		Metadata: metadata.NewResolveMetadata("page.html", "", "*", "1.0"),
	}
	for _, r := range results {
		id := &types.ComponentIdentity{Name: r.name, Path: r.path, Strategy: r.strategy}
		report.Results = append(report.Results, types.NewResolvedElement(r.target, id))
	}
	return report
}

func TestAggregate(t *testing.T) {
	report := sampleReport()
	output := NewAggregator([]string{"names", "strategies", "paths", "fingerprints"}).Aggregate(report)

	assert.Equal(t, []string{"OrderSummary", "SubmitButton", "Unknown Component"}, output.Names)
	assert.Equal(t, map[string]int{"walker": 2, "heuristic": 1, "fallback": 1}, output.Strategies)
	assert.Equal(t, []string{
		"OrderSummary > p > span.total",
		"Unknown > div",
		"UserForm > SubmitButton",
	}, output.Paths)

	submit := types.IdentityFingerprint("SubmitButton", []string{"UserForm", "SubmitButton"})
	assert.Equal(t, []string{"button#save", "button#cancel"}, output.Fingerprints[submit])
	assert.Len(t, output.Fingerprints, 3)

	meta, ok := output.Metadata.(*metadata.ResolveMetadata)
	require.True(t, ok)
	assert.Equal(t, "aggregated", meta.Format)
}

func TestAggregate_OnlyRequestedFields(t *testing.T) {
	output := NewAggregator([]string{"strategies"}).Aggregate(sampleReport())

	assert.Nil(t, output.Names)
	assert.Nil(t, output.Paths)
	assert.Nil(t, output.Fingerprints)
	assert.NotEmpty(t, output.Strategies)
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields(" Names, strategies ,,paths")
	require.NoError(t, err)
	assert.Equal(t, []string{"names", "strategies", "paths"}, fields)

	fields, err = ParseFields("all")
	require.NoError(t, err)
	assert.Equal(t, ValidFields, fields)

	fields, err = ParseFields("")
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = ParseFields("names,techs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid aggregate field: techs")
}
