package progress

import (
	"sort"
	"strings"
	"time"
)

// EventType represents the type of progress event
type EventType int

const (
	EventRunStart EventType = iota
	EventRunComplete
	EventResolveStart
	EventResolveComplete
	EventStrategyAttempt
	EventStrategyDeferred
	EventStrategyFaulted
	EventStrategyMatched
	EventRulesLoaded
	EventFileWriting
	EventFileWritten
	EventInfo
)

// Event represents something that happened during resolution
type Event struct {
	Type      EventType
	Target    string   // Markup description of the element being resolved
	Strategy  string   // Strategy the event refers to
	Name      string   // Resolved component name
	Path      []string // Resolved component path
	Info      string
	Reason    string // Fault reason
	Count     int
	Duration  time.Duration
	Timestamp time.Time
}

// Reporter is the interface the resolver uses to report events
type Reporter interface {
	Report(event Event)
}

// Handler processes events and produces output
type Handler interface {
	Handle(event Event)
}

// StrategyEntry records the outcome of one resolution for the summary
type StrategyEntry struct {
	Target   string
	Strategy string
	Name     string
	Duration time.Duration
}

// getTimingIcon returns the appropriate icon for a duration
func getTimingIcon(d time.Duration) string {
	if d >= 100*time.Millisecond {
		return "🔴" // Slow
	} else if d >= 10*time.Millisecond {
		return "🟡" // Medium
	}
	return "🟢" // Fast
}

// formatPath renders a component path for display
func formatPath(path []string) string {
	return strings.Join(path, " > ")
}

// shortenTarget shortens a markup description for display if it's too long
func shortenTarget(target string, maxLen int) string {
	if len(target) <= maxLen {
		return target
	}
	return target[:maxLen-3] + "..."
}

// countByStrategy counts entries per strategy, returning names sorted by count descending
func countByStrategy(entries []StrategyEntry) ([]string, map[string]int) {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Strategy]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names, counts
}
