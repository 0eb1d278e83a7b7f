package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petrarca/component-resolver/internal/util"
)

// Outputter interface for commands with structured output
type Outputter interface {
	// ToJSON returns the data structure for JSON/YAML marshaling
	ToJSON() interface{}
	// ToText writes human-readable text format
	ToText(w io.Writer)
}

// CSVOutputter is implemented by outputs that have a tabular form
type CSVOutputter interface {
	ToCSV(w *csv.Writer) error
}

// Render serializes o in the given format
func Render(o Outputter, format string, pretty bool) ([]byte, error) {
	switch util.NormalizeFormat(format) {
	case "json":
		if pretty {
			return json.MarshalIndent(o.ToJSON(), "", "  ")
		}
		return json.Marshal(o.ToJSON())
	case "yaml":
		return yaml.Marshal(o.ToJSON())
	case "csv":
		c, ok := o.(CSVOutputter)
		if !ok {
			return nil, fmt.Errorf("csv output is not supported for this command")
		}
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := c.ToCSV(w); err != nil {
			return nil, err
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	case "text":
		var buf bytes.Buffer
		o.ToText(&buf)
		return buf.Bytes(), nil
	default:
		return nil, util.ValidateOutputFormat(format)
	}
}

// WriteOutput writes o to outputFile, or to stdout when outputFile is empty.
// Text written straight to a terminal is styled.
func WriteOutput(stdout, stderr io.Writer, o Outputter, format, outputFile string, pretty bool) error {
	if outputFile == "" && util.NormalizeFormat(format) == "text" {
		o.ToText(stdout)
		return nil
	}

	data, err := Render(o, format, pretty)
	if err != nil {
		return fmt.Errorf("failed to render %s output: %w", format, err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		// Always show confirmation to user (like curl -o)
		fmt.Fprintf(stderr, "Results written to %s\n", outputFile)
		return nil
	}

	if _, err := stdout.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(stdout)
	}
	return nil
}

// setupOutputFlags configures both format and output flags for a command
func setupOutputFlags(cmd *cobra.Command, formatPtr *string, outputPtr *string) {
	cmd.Flags().StringVarP(formatPtr, "format", "f", *formatPtr, "Output format: "+strings.Join(util.GetValidFormats(), ", "))
	cmd.Flags().StringVarP(outputPtr, "output", "o", *outputPtr, "Output file path (default: stdout, - also means stdout)")
}

// textStyles renders headings and labels of text output
type textStyles struct {
	enabled bool
	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
}

// stylesFor enables styling only when w is a terminal
func stylesFor(w io.Writer) textStyles {
	f, ok := w.(*os.File)
	enabled := ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	return textStyles{
		enabled: enabled,
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		muted:   lipgloss.NewStyle().Faint(true),
		accent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

func (s textStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s textStyles) Heading(text string) string { return s.render(s.heading, text) }
func (s textStyles) Label(text string) string   { return s.render(s.label, text) }
func (s textStyles) Muted(text string) string   { return s.render(s.muted, text) }
func (s textStyles) Accent(text string) string  { return s.render(s.accent, text) }
