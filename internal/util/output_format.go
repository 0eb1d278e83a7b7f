package util

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ValidOutputFormats defines the supported output formats
var ValidOutputFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
	"csv":  true,
}

var formatExtensions = map[string]string{
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".csv":  "csv",
	".txt":  "text",
}

// ValidateOutputFormat checks if the given format is valid
func ValidateOutputFormat(format string) error {
	if !ValidOutputFormats[NormalizeFormat(format)] {
		return fmt.Errorf("invalid format: %s. Valid formats are: %s", format, strings.Join(GetValidFormats(), ", "))
	}
	return nil
}

// GetValidFormats returns the valid output formats in sorted order
func GetValidFormats() []string {
	formats := make([]string, 0, len(ValidOutputFormats))
	for format := range ValidOutputFormats {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// NormalizeFormat lowercases and trims the format string
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// FormatFromPath infers an output format from a file extension.
// Returns "" when the extension is not recognized.
func FormatFromPath(path string) string {
	return formatExtensions[strings.ToLower(filepath.Ext(path))]
}
