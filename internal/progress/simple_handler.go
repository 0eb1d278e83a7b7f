package progress

import (
	"fmt"
	"io"
)

// SimpleHandler outputs events as simple lines (no tree)
type SimpleHandler struct {
	writer  io.Writer
	entries []StrategyEntry // Track all outcomes for summary
	faults  int
}

func NewSimpleHandler(writer io.Writer) *SimpleHandler {
	return &SimpleHandler{
		writer:  writer,
		entries: make([]StrategyEntry, 0),
	}
}

func (h *SimpleHandler) Handle(event Event) {
	switch event.Type {
	case EventRunStart:
		fmt.Fprintf(h.writer, "[RUN]  Starting: %s (selector %s)\n", event.Info, event.Target)

	case EventRunComplete:
		fmt.Fprintf(h.writer, "[RUN]  Completed: %d elements in %.1fms\n",
			event.Count, float64(event.Duration.Microseconds())/1000)
		h.printConciseStrategySummary()

	case EventRulesLoaded:
		fmt.Fprintf(h.writer, "[INIT] Heuristics loaded: %d (%s)\n", event.Count, event.Info)

	case EventResolveStart:
		fmt.Fprintf(h.writer, "[ELEM] Resolving: %s\n", event.Target)

	case EventStrategyAttempt:
		fmt.Fprintf(h.writer, "[STRAT] Trying: %s\n", event.Strategy)

	case EventStrategyDeferred:
		fmt.Fprintf(h.writer, "[STRAT] Deferred: %s\n", event.Strategy)

	case EventStrategyFaulted:
		h.faults++
		fmt.Fprintf(h.writer, "[STRAT] ✗ FAULTED: %s - %s\n", event.Strategy, event.Reason)

	case EventStrategyMatched:
		fmt.Fprintf(h.writer, "[STRAT] ✓ MATCHED: %s - %s (%s)\n", event.Strategy, event.Name, formatPath(event.Path))

	case EventResolveComplete:
		h.entries = append(h.entries, StrategyEntry{
			Target:   event.Target,
			Strategy: event.Strategy,
			Name:     event.Name,
			Duration: event.Duration,
		})
		fmt.Fprintf(h.writer, "[ELEM] %s: %s %s via %s\n",
			shortenTarget(event.Target, 60), getTimingIcon(event.Duration), event.Name, event.Strategy)

	case EventFileWriting:
		fmt.Fprintf(h.writer, "[OUT]  Writing results to: %s\n", event.Info)

	case EventFileWritten:
		fmt.Fprintf(h.writer, "[OUT]  Results written: %s\n", event.Info)

	case EventInfo:
		fmt.Fprintf(h.writer, "[INFO] %s\n", event.Info)
	}
}

// printConciseStrategySummary provides a human-readable summary of which strategies resolved what
func (h *SimpleHandler) printConciseStrategySummary() {
	if len(h.entries) == 0 {
		return
	}

	names, counts := countByStrategy(h.entries)

	fmt.Fprintf(h.writer, "\n🔍 STRATEGY SUMMARY\n")
	fmt.Fprintf(h.writer, "   • Total elements: %d\n", len(h.entries))
	for _, name := range names {
		fmt.Fprintf(h.writer, "   • %s: %d\n", name, counts[name])
	}
	if h.faults > 0 {
		fmt.Fprintf(h.writer, "   • ⚠️  Strategy faults: %d\n", h.faults)
	} else {
		fmt.Fprintf(h.writer, "   • ✅ No strategy faults\n")
	}

	fmt.Fprintln(h.writer)
}
