package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petrarca/component-resolver/internal/metadata"
	"github.com/petrarca/component-resolver/internal/types"
)

// ValidFields lists the fields an aggregate can contain
var ValidFields = []string{"names", "strategies", "paths", "fingerprints"}

// AggregateOutput represents rolled-up data from a resolution run
type AggregateOutput struct {
	Metadata     interface{}         `json:"metadata,omitempty" yaml:"metadata,omitempty"`         // Run metadata (from the report)
	Names        []string            `json:"names,omitempty" yaml:"names,omitempty"`               // Distinct component names
	Strategies   map[string]int      `json:"strategies,omitempty" yaml:"strategies,omitempty"`     // Strategy name to resolution count
	Paths        []string            `json:"paths,omitempty" yaml:"paths,omitempty"`               // Distinct paths joined with " > "
	Fingerprints map[string][]string `json:"fingerprints,omitempty" yaml:"fingerprints,omitempty"` // Identity fingerprint to targets sharing it
}

// Aggregator handles aggregation of resolution results
type Aggregator struct {
	fields map[string]bool
}

// ParseFields splits and validates a comma-separated field list. "all" selects every field.
func ParseFields(spec string) ([]string, error) {
	if strings.TrimSpace(strings.ToLower(spec)) == "all" {
		return append([]string(nil), ValidFields...), nil
	}

	var fields []string
	for _, field := range strings.Split(spec, ",") {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		if !isValidField(field) {
			return nil, fmt.Errorf("invalid aggregate field: %s. Valid fields are: %s", field, strings.Join(ValidFields, ", "))
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func isValidField(field string) bool {
	for _, valid := range ValidFields {
		if field == valid {
			return true
		}
	}
	return false
}

// NewAggregator creates a new aggregator with specified fields
func NewAggregator(fields []string) *Aggregator {
	fieldMap := make(map[string]bool)
	for _, field := range fields {
		fieldMap[field] = true
	}
	return &Aggregator{
		fields: fieldMap,
	}
}

// Aggregate processes a report and returns aggregated data
func (a *Aggregator) Aggregate(report *types.Report) *AggregateOutput {
	output := &AggregateOutput{}

	// Include metadata from the report and update format
	output.Metadata = report.Metadata
	if meta, ok := report.Metadata.(*metadata.ResolveMetadata); ok {
		meta.SetFormat("aggregated")
	}

	if a.fields["names"] {
		output.Names = a.collectNames(report)
	}

	if a.fields["strategies"] {
		output.Strategies = a.collectStrategies(report)
	}

	if a.fields["paths"] {
		output.Paths = a.collectPaths(report)
	}

	if a.fields["fingerprints"] {
		output.Fingerprints = a.collectFingerprints(report)
	}

	return output
}

// collectNames collects all unique component names
func (a *Aggregator) collectNames(report *types.Report) []string {
	nameSet := make(map[string]bool)
	for _, result := range report.Results {
		if result.Name != "" {
			nameSet[result.Name] = true
		}
	}
	return sortedSet(nameSet)
}

// collectStrategies counts resolutions per strategy
func (a *Aggregator) collectStrategies(report *types.Report) map[string]int {
	counts := make(map[string]int)
	for _, result := range report.Results {
		counts[result.Strategy]++
	}
	return counts
}

// collectPaths collects all unique paths
func (a *Aggregator) collectPaths(report *types.Report) []string {
	pathSet := make(map[string]bool)
	for _, result := range report.Results {
		if len(result.Path) > 0 {
			pathSet[strings.Join(result.Path, " > ")] = true
		}
	}
	return sortedSet(pathSet)
}

// collectFingerprints groups targets by identity fingerprint, keeping document order
func (a *Aggregator) collectFingerprints(report *types.Report) map[string][]string {
	groups := make(map[string][]string)
	for _, result := range report.Results {
		groups[result.Fingerprint] = append(groups[result.Fingerprint], result.Target)
	}
	return groups
}

// sortedSet returns the keys of set in ascending order
func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
