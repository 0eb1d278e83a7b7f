package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/petrarca/component-resolver/internal/aggregator"
	"github.com/petrarca/component-resolver/internal/config"
	"github.com/petrarca/component-resolver/internal/metadata"
	"github.com/petrarca/component-resolver/internal/progress"
	"github.com/petrarca/component-resolver/internal/provider"
	"github.com/petrarca/component-resolver/internal/resolver/pathbuilder"
	"github.com/petrarca/component-resolver/internal/spec"
	"github.com/petrarca/component-resolver/internal/types"
	"github.com/petrarca/component-resolver/internal/util"
	"github.com/petrarca/component-resolver/internal/workspace"
)

// resolveOptions holds the inputs of a resolve run that are not settings
type resolveOptions struct {
	HTML     string
	Tree     string
	Selector string
	All      bool
	Job      string
}

func newResolveCommand() *cobra.Command {
	// Initialize settings with defaults and environment variables
	settings := config.LoadSettings()
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the component owning the elements matched by a selector",
		Long: `Resolve identifies the component that owns an element of a DOM snapshot.

The element is chosen with a CSS selector. With --tree, a render-tree snapshot exported
from the running application supplies framework ownership; without it, resolution falls
back to markup heuristics.

Examples:
  component-resolver resolve --html page.html --selector "#checkout button"
  component-resolver resolve --html page.html --tree tree.yaml --selector button --all
  component-resolver resolve --html page.html --selector "[data-testid]" --all --aggregate names,strategies
  component-resolver resolve --config job.yaml -f text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts, settings)
		},
	}

	// Store environment variable values for flag defaults
	logLevel := strings.ToLower(settings.LogLevel.String())

	cmd.Flags().StringVar(&opts.HTML, "html", "", "DOM snapshot (HTML file)")
	cmd.Flags().StringVar(&opts.Tree, "tree", "", "Render-tree snapshot (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.Selector, "selector", "s", "", "CSS selector of the element to resolve")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Resolve every element matching the selector")
	cmd.Flags().StringVar(&opts.Job, "config", "", "Job file (YAML/JSON) or inline JSON describing the run")

	setupOutputFlags(cmd, &settings.Format, &settings.OutputFile)
	cmd.Flags().StringVar(&settings.Aggregate, "aggregate", settings.Aggregate, "Aggregate fields: "+strings.Join(aggregator.ValidFields, ",")+",all")
	cmd.Flags().BoolVar(&settings.PrettyPrint, "pretty", settings.PrettyPrint, "Pretty print JSON output")

	cmd.Flags().BoolVar(&settings.NoDevTools, "no-devtools", settings.NoDevTools, "Ignore the introspection hook of the render-tree snapshot")
	cmd.Flags().StringVar(&settings.RulesDir, "rules", settings.RulesDir, "Directory with additional heuristics YAML files")
	cmd.Flags().StringVar(&settings.AttachAttribute, "attach-attr", settings.AttachAttribute, "Element attribute holding the attached render node id")
	cmd.Flags().IntVar(&settings.Concurrency, "concurrency", settings.Concurrency, "Parallel resolutions with --all")

	cmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show progress with simple output")
	cmd.Flags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Show progress as a tree with every strategy attempt (cannot be used with --verbose)")

	// Logging flags - use defaults from environment variables
	cmd.Flags().String("log-level", logLevel, "Log level: debug, info, warn, error")
	cmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	cmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")

	return cmd
}

// applyLogFlags copies the logging flags into settings
func applyLogFlags(cmd *cobra.Command, settings *config.Settings) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	level, err := config.ParseLogLevel(logLevel)
	if err != nil {
		return err
	}
	settings.LogLevel = level
	settings.LogFormat = logFormat
	settings.LogFile = logFile
	return nil
}

// applyJob folds a job file into the run. Flags given on the command line win.
func applyJob(opts *resolveOptions, settings *config.Settings) error {
	job, err := config.LoadJob(opts.Job)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}

	job.MergeWithSettings(settings)

	if opts.HTML == "" {
		opts.HTML = job.Resolve.HTML
	}
	if opts.Tree == "" {
		opts.Tree = job.Resolve.Tree
	}
	if opts.Selector == "" {
		opts.Selector = job.Resolve.Selector
	}
	if !opts.All {
		opts.All = job.Resolve.All
	}
	return nil
}

// prepareRun validates the combined flags, job and environment
func prepareRun(cmd *cobra.Command, opts *resolveOptions, settings *config.Settings) error {
	if err := applyJob(opts, settings); err != nil {
		return err
	}

	// Handle special case: -o - means stdout
	if settings.OutputFile == "-" {
		settings.OutputFile = ""
	}

	// Infer the format from the output file unless one was chosen explicitly
	if !cmd.Flags().Changed("format") && settings.OutputFile != "" && settings.Format == config.DefaultSettings().Format {
		if format := util.FormatFromPath(settings.OutputFile); format != "" {
			settings.Format = format
		}
	}
	settings.Format = util.NormalizeFormat(settings.Format)

	// Check for mutually exclusive flags
	if settings.Verbose && settings.Debug {
		return fmt.Errorf("cannot use --verbose and --debug together, choose one")
	}

	if opts.HTML == "" {
		return fmt.Errorf("a DOM snapshot is required (--html)")
	}
	if strings.TrimSpace(opts.Selector) == "" {
		return fmt.Errorf("a selector is required (--selector)")
	}

	return settings.Validate()
}

// newProgress returns nil when neither verbose nor debug output is requested
func newProgress(settings *config.Settings, w io.Writer) *progress.Progress {
	switch {
	case settings.Debug:
		p := progress.New(true, progress.NewTreeHandler(w))
		p.EnableStrategyTracing()
		return p
	case settings.Verbose:
		return progress.New(true, progress.NewSimpleHandler(w))
	default:
		return nil
	}
}

func runResolve(cmd *cobra.Command, opts *resolveOptions, settings *config.Settings) error {
	if err := applyLogFlags(cmd, settings); err != nil {
		return err
	}
	if err := prepareRun(cmd, opts, settings); err != nil {
		return err
	}
	logger := settings.ConfigureLogger()

	start := time.Now()
	prog := newProgress(settings, cmd.ErrOrStderr())
	prog.RunStart(opts.HTML, opts.Selector)

	logger.Debug("Loading snapshots", "html", opts.HTML, "tree", opts.Tree)

	ws, err := workspace.Load(provider.NewFSProvider("."), opts.HTML, opts.Tree)
	if err != nil {
		return err
	}

	heuristics, err := ws.Heuristics(settings)
	if err != nil {
		return err
	}
	prog.RulesLoaded(ruleSources(settings, ws))
	if ws.Tree != nil && settings.NoDevTools {
		prog.Info("Introspection hook disabled, render tree is read through " + settings.AttachAttribute)
	}

	var reporter progress.Reporter
	if prog != nil {
		reporter = prog
	}
	r, err := ws.Resolver(settings, heuristics, logger, reporter)
	if err != nil {
		return err
	}

	targets, err := ws.Targets(opts.Selector, opts.All)
	if err != nil {
		return err
	}

	logger.Debug("Resolving elements",
		"count", len(targets),
		"strategies", r.Strategies(),
		"concurrency", settings.Concurrency)

	// Results are stored by index so the report keeps document order
	results := make([]types.ResolvedElement, len(targets))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(settings.Concurrency)
	for i, el := range targets {
		i, el := i, el
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = types.NewResolvedElement(pathbuilder.Describe(el), r.Resolve(el))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	meta := metadata.NewResolveMetadata(opts.HTML, opts.Tree, opts.Selector, spec.Version)
	meta.SetCount(len(results))
	meta.SetStrategies(r.Strategies())
	meta.SetProperties(map[string]interface{}{
		"all":              opts.All,
		"attach_attribute": settings.AttachAttribute,
		"devtools":         ws.Tree != nil && !settings.NoDevTools,
	})
	meta.SetDuration(time.Since(start))

	report := &types.Report{
		ID:       types.GenerateResolutionID(),
		Metadata: meta,
		Results:  results,
	}

	var out Outputter = &reportOutput{report: report}
	if settings.Aggregate != "" {
		fields, err := aggregator.ParseFields(settings.Aggregate)
		if err != nil {
			return err
		}
		out = &aggregateOutput{output: aggregator.NewAggregator(fields).Aggregate(report)}
	}

	logger.Debug("Generating output",
		"format", settings.Format,
		"aggregate", settings.Aggregate,
		"pretty_print", settings.PrettyPrint)

	if settings.OutputFile != "" {
		prog.FileWriting(settings.OutputFile)
	}
	if err := WriteOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), out, settings.Format, settings.OutputFile, settings.PrettyPrint); err != nil {
		return err
	}
	if settings.OutputFile != "" {
		prog.FileWritten(settings.OutputFile)
	}

	prog.RunComplete(len(results), time.Since(start))
	return nil
}

// ruleSources names where the active heuristics came from
func ruleSources(settings *config.Settings, ws *workspace.Workspace) []string {
	sources := []string{"embedded"}
	if settings.RulesDir != "" {
		sources = append(sources, filepath.Base(settings.RulesDir))
	}
	if ws.Project != nil && ws.Project.Heuristics != nil {
		sources = append(sources, config.ProjectConfigFile)
	}
	return sources
}

// reportOutput renders a full resolution report
type reportOutput struct {
	report *types.Report
}

func (o *reportOutput) ToJSON() interface{} {
	return o.report
}

func (o *reportOutput) ToText(w io.Writer) {
	st := stylesFor(w)
	fmt.Fprintf(w, "%s %s\n", st.Heading("Resolution"), st.Muted(o.report.ID))

	for _, res := range o.report.Results {
		fmt.Fprintf(w, "\n%s\n", st.Accent(res.Target))
		fmt.Fprintf(w, "  %s %s\n", st.Label("name:     "), res.Name)
		fmt.Fprintf(w, "  %s %s\n", st.Label("path:     "), strings.Join(res.Path, " > "))
		fmt.Fprintf(w, "  %s %s\n", st.Label("strategy: "), res.Strategy)
		if len(res.Attributes) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s\n", st.Label("attributes:"))
		for _, k := range sortedKeys(res.Attributes) {
			fmt.Fprintf(w, "    %s = %v\n", k, res.Attributes[k])
		}
	}
}

func (o *reportOutput) ToCSV(w *csv.Writer) error {
	if err := w.Write([]string{"target", "name", "path", "strategy", "fingerprint"}); err != nil {
		return err
	}
	for _, res := range o.report.Results {
		row := []string{res.Target, res.Name, strings.Join(res.Path, " > "), res.Strategy, res.Fingerprint}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// aggregateOutput renders the rolled-up view of a report
type aggregateOutput struct {
	output *aggregator.AggregateOutput
}

func (o *aggregateOutput) ToJSON() interface{} {
	return o.output
}

func (o *aggregateOutput) ToText(w io.Writer) {
	st := stylesFor(w)

	if len(o.output.Names) > 0 {
		fmt.Fprintln(w, st.Heading("Names"))
		for _, name := range o.output.Names {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}

	if len(o.output.Strategies) > 0 {
		fmt.Fprintln(w, st.Heading("Strategies"))
		for _, name := range sortedKeys(o.output.Strategies) {
			fmt.Fprintf(w, "  %-10s %d\n", name, o.output.Strategies[name])
		}
	}

	if len(o.output.Paths) > 0 {
		fmt.Fprintln(w, st.Heading("Paths"))
		for _, path := range o.output.Paths {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}

	if len(o.output.Fingerprints) > 0 {
		fmt.Fprintln(w, st.Heading("Fingerprints"))
		for _, fp := range sortedKeys(o.output.Fingerprints) {
			fmt.Fprintf(w, "  %s %s\n", st.Muted(fp), strings.Join(o.output.Fingerprints[fp], ", "))
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
