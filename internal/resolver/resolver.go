// Package resolver identifies the UI component that owns a DOM element by running a
// prioritized chain of detection strategies.
package resolver

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/petrarca/component-resolver/internal/progress"
	"github.com/petrarca/component-resolver/internal/resolver/pathbuilder"
	"github.com/petrarca/component-resolver/internal/resolver/strategies"
	"github.com/petrarca/component-resolver/internal/resolver/strategies/devtools"
	"github.com/petrarca/component-resolver/internal/resolver/strategies/fallback"
	"github.com/petrarca/component-resolver/internal/resolver/strategies/heuristic"
	"github.com/petrarca/component-resolver/internal/resolver/strategies/walker"
	"github.com/petrarca/component-resolver/internal/rules"
	"github.com/petrarca/component-resolver/internal/types"
)

// Resolver runs the detection chain. It holds no per-call state and is safe for
// concurrent use.
type Resolver struct {
	chain    []strategies.Strategy
	logger   *slog.Logger
	reporter progress.Reporter
}

type options struct {
	hook       strategies.Hook
	accessor   strategies.Accessor
	heuristics *types.Heuristics
	logger     *slog.Logger
	reporter   progress.Reporter
	chain      []strategies.Strategy
}

// Option configures a Resolver
type Option func(*options)

// WithHook enables the devtools strategy with the host framework's introspection hook
func WithHook(hook strategies.Hook) Option {
	return func(o *options) { o.hook = hook }
}

// WithAccessor enables the walker strategy with the per-element render node accessor
func WithAccessor(accessor strategies.Accessor) Option {
	return func(o *options) { o.accessor = accessor }
}

// WithHeuristics replaces the embedded heuristic tables
func WithHeuristics(h *types.Heuristics) Option {
	return func(o *options) { o.heuristics = h }
}

// WithLogger sets the logger strategy faults are reported to
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithReporter sets the progress reporter receiving per-strategy events
func WithReporter(reporter progress.Reporter) Option {
	return func(o *options) { o.reporter = reporter }
}

// WithStrategies replaces the default chain. The chain still never returns nil:
// when every strategy defers or faults, the minimal fallback identity is returned.
func WithStrategies(chain ...strategies.Strategy) Option {
	return func(o *options) { o.chain = chain }
}

// New creates a resolver. Without WithHeuristics the embedded heuristic tables are loaded.
func New(opts ...Option) (*Resolver, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	chain := o.chain
	if chain == nil {
		h := o.heuristics
		if h == nil {
			loaded, err := rules.LoadEmbeddedHeuristics()
			if err != nil {
				return nil, fmt.Errorf("failed to load heuristics: %w", err)
			}
			h = loaded
		}
		kit := strategies.NewToolkit(h)
		chain = []strategies.Strategy{
			devtools.New(o.hook, kit),
			walker.New(o.accessor, kit),
			heuristic.New(kit),
			fallback.New(kit),
		}
	}

	return &Resolver{
		chain:    chain,
		logger:   o.logger,
		reporter: o.reporter,
	}, nil
}

// Strategies returns the strategy names in priority order
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.chain))
	for i, s := range r.chain {
		names[i] = s.Name()
	}
	return names
}

// Resolve returns the identity of the component owning el. It never returns nil and
// never panics: strategies that fail are logged and skipped.
func (r *Resolver) Resolve(el types.Element) *types.ComponentIdentity {
	start := time.Now()
	target := describe(el)
	r.report(progress.Event{Type: progress.EventResolveStart, Target: target})

	id := r.run(el, target)

	r.report(progress.Event{
		Type:     progress.EventResolveComplete,
		Target:   target,
		Strategy: id.Strategy,
		Name:     id.Name,
		Path:     id.Path,
		Duration: time.Since(start),
	})
	return id
}

func (r *Resolver) run(el types.Element, target string) *types.ComponentIdentity {
	for _, s := range r.chain {
		r.report(progress.Event{Type: progress.EventStrategyAttempt, Target: target, Strategy: s.Name()})

		id, err := attempt(s, el)
		if err != nil {
			r.logger.Warn("strategy failed, trying next", "strategy", s.Name(), "element", target, "error", err)
			r.report(progress.Event{Type: progress.EventStrategyFaulted, Target: target, Strategy: s.Name(), Reason: err.Error()})
			continue
		}
		if id == nil || id.Name == "" || len(id.Path) == 0 {
			r.logger.Debug("strategy deferred", "strategy", s.Name(), "element", target)
			r.report(progress.Event{Type: progress.EventStrategyDeferred, Target: target, Strategy: s.Name()})
			continue
		}

		if id.Strategy == "" {
			id.Strategy = s.Name()
		}
		if id.SourceElement == nil {
			id.SourceElement = el
		}
		r.report(progress.Event{Type: progress.EventStrategyMatched, Target: target, Strategy: id.Strategy, Name: id.Name, Path: id.Path})
		return id
	}

	r.logger.Warn("every strategy deferred or failed", "element", target)
	return fallback.Minimal(el)
}

// attempt runs one strategy, converting a panic into an error
func attempt(s strategies.Strategy, el types.Element) (id *types.ComponentIdentity, err error) {
	defer func() {
		if r := recover(); r != nil {
			id, err = nil, fmt.Errorf("panic in %s strategy: %v", s.Name(), r)
		}
	}()
	return s.Resolve(el)
}

func (r *Resolver) report(event progress.Event) {
	if r.reporter != nil {
		r.reporter.Report(event)
	}
}

// describe renders the element for logs, tolerating elements that fail on access
func describe(el types.Element) (desc string) {
	defer func() {
		if recover() != nil {
			desc = "<inaccessible element>"
		}
	}()
	if el == nil {
		return "<nil>"
	}
	return pathbuilder.Describe(el)
}
