package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petrarca/component-resolver/internal/config"
	"github.com/petrarca/component-resolver/internal/rules"
	"github.com/petrarca/component-resolver/internal/types"
	"github.com/petrarca/component-resolver/internal/util"
	"github.com/petrarca/component-resolver/internal/validation"
)

func newRulesCommand() *cobra.Command {
	var (
		format     = "text"
		outputFile string
		rulesDir   string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the heuristic tables used by the resolver",
		Long: `Rules prints the heuristic tables the resolver consults: wrapper names that are
never reported as owners, naming attributes, utility class patterns, landmark tags,
ARIA roles and interactive tags.

The embedded tables are extended with --rules and with the heuristics section of a
project's .component-resolver.yml (--project).

Examples:
  component-resolver rules
  component-resolver rules -f yaml --rules ./my-heuristics
  component-resolver rules --project ./snapshots
  component-resolver rules validate ./my-heuristics/*.yaml
  component-resolver rules schemas`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.ValidateOutputFormat(format); err != nil {
				return err
			}

			h, err := rules.Load(rulesDir)
			if err != nil {
				return err
			}

			if projectDir != "" {
				project, err := config.LoadProjectConfig(projectDir)
				if err != nil {
					return err
				}
				project.Apply(config.DefaultSettings(), h)
			}

			return WriteOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), &heuristicsOutput{heuristics: h}, format, outputFile, true)
		},
	}

	setupOutputFlags(cmd, &format, &outputFile)
	cmd.Flags().StringVar(&rulesDir, "rules", "", "Directory with additional heuristics YAML files")
	cmd.Flags().StringVar(&projectDir, "project", "", "Directory containing a "+config.ProjectConfigFile)

	cmd.AddCommand(newRulesValidateCommand())
	cmd.AddCommand(newRulesSchemasCommand())
	return cmd
}

func newRulesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate heuristics files and project configuration against their schemas",
		Long: `Validate checks heuristics YAML files against the embedded schema.
Files named .component-resolver.yml are checked against the project configuration schema.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			st := stylesFor(w)

			failed := 0
			for _, path := range args {
				if err := validation.ValidateYAMLFile(schemaFor(path), path); err != nil {
					failed++
					fmt.Fprintf(w, "%s %s\n", st.Heading("✗"), path)
					for _, line := range strings.Split(err.Error(), "\n") {
						fmt.Fprintf(w, "    %s\n", line)
					}
					continue
				}
				fmt.Fprintf(w, "%s %s\n", st.Accent("✓"), path)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}

func newRulesSchemasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the embedded JSON schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemas, err := validation.ListAvailableSchemas()
			if err != nil {
				return err
			}
			sort.Strings(schemas)
			for _, schema := range schemas {
				fmt.Fprintln(cmd.OutOrStdout(), schema)
			}
			return nil
		},
	}
}

func schemaFor(path string) string {
	if filepath.Base(path) == config.ProjectConfigFile {
		return config.ProjectConfigSchema
	}
	return rules.HeuristicsSchema
}

// heuristicsOutput renders the merged heuristic tables
type heuristicsOutput struct {
	heuristics *types.Heuristics
}

func (o *heuristicsOutput) ToJSON() interface{} {
	return o.heuristics
}

func (o *heuristicsOutput) ToText(w io.Writer) {
	st := stylesFor(w)
	h := o.heuristics

	lists := []struct {
		title  string
		values []string
	}{
		{"Wrappers", h.Wrappers},
		{"Wrapper substrings", h.WrapperSubstrs},
		{"Root wrappers", h.RootWrappers},
		{"Naming attributes", h.NamingAttrs},
		{"Component attributes", h.ComponentAttrs},
		{"Utility classes", h.UtilityClasses},
		{"Class markers", h.ClassMarkers},
		{"Unsafe props", h.UnsafeProps},
		{"Document tags", h.DocumentTags},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", st.Heading(l.title), st.Muted(fmt.Sprintf("(%d)", len(l.values))))
		fmt.Fprintf(w, "  %s\n", strings.Join(l.values, ", "))
	}

	maps := []struct {
		title  string
		values map[string]string
	}{
		{"Landmarks", h.Landmarks},
		{"Roles", h.Roles},
		{"Interactive tags", h.InteractiveTags},
	}
	for _, m := range maps {
		if len(m.values) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", st.Heading(m.title), st.Muted(fmt.Sprintf("(%d)", len(m.values))))
		for _, k := range sortedKeys(m.values) {
			fmt.Fprintf(w, "  %-12s %s\n", st.Label(k), m.values[k])
		}
	}
}
