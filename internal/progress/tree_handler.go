package progress

import (
	"fmt"
	"io"
)

// TreeHandler outputs events with tree-like visualization, one branch per element
type TreeHandler struct {
	writer  io.Writer
	entries []StrategyEntry // Track all outcomes for summary
}

func NewTreeHandler(writer io.Writer) *TreeHandler {
	return &TreeHandler{
		writer:  writer,
		entries: make([]StrategyEntry, 0),
	}
}

func (h *TreeHandler) Handle(event Event) {
	indent := "│  "
	prefix := "├─ "

	switch event.Type {
	case EventRunStart:
		fmt.Fprintf(h.writer, "Resolving %s in %s...\n\n", event.Target, event.Info)

	case EventRunComplete:
		fmt.Fprintf(h.writer, "└─ Completed: %d elements in %.1fms\n",
			event.Count, float64(event.Duration.Microseconds())/1000)

		// Print machine-readable CSV data for debug mode
		h.printMachineReadableStrategyData()

	case EventRulesLoaded:
		fmt.Fprintf(h.writer, "%sHeuristics: %s\n", prefix, event.Info)

	case EventResolveStart:
		fmt.Fprintf(h.writer, "%s%s\n", prefix, event.Target)

	case EventStrategyAttempt:
		fmt.Fprintf(h.writer, "%s%s%s?\n", indent, prefix, event.Strategy)

	case EventStrategyDeferred:
		fmt.Fprintf(h.writer, "%s%s%s: deferred\n", indent, prefix, event.Strategy)

	case EventStrategyFaulted:
		fmt.Fprintf(h.writer, "%s%s✗ %s: %s\n", indent, prefix, event.Strategy, event.Reason)

	case EventStrategyMatched:
		fmt.Fprintf(h.writer, "%s└─ ✓ %s: %s\n", indent, event.Strategy, formatPath(event.Path))

	case EventResolveComplete:
		h.entries = append(h.entries, StrategyEntry{
			Target:   event.Target,
			Strategy: event.Strategy,
			Name:     event.Name,
			Duration: event.Duration,
		})
		fmt.Fprintf(h.writer, "%s└─ ⏱  %.2fms\n", indent, float64(event.Duration.Microseconds())/1000)

	case EventFileWriting:
		fmt.Fprintf(h.writer, "%sWriting results to: %s\n", prefix, event.Info)

	case EventFileWritten:
		fmt.Fprintf(h.writer, "%sResults written: %s\n", prefix, event.Info)

	case EventInfo:
		fmt.Fprintf(h.writer, "%s%s\n", prefix, event.Info)
	}
}

// printMachineReadableStrategyData prints one CSV row per resolved element
func (h *TreeHandler) printMachineReadableStrategyData() {
	if len(h.entries) == 0 {
		return
	}

	fmt.Fprintln(h.writer)
	fmt.Fprintln(h.writer, "# target,strategy,name,duration_ms")
	for _, e := range h.entries {
		fmt.Fprintf(h.writer, "%q,%s,%q,%.3f\n", e.Target, e.Strategy, e.Name, float64(e.Duration.Microseconds())/1000)
	}
}
