package progress

import (
	"os"
	"strings"
	"sync"
	"time"
)

// Progress is the centralized verbose system. It is safe for concurrent use;
// events are handed to the handler one at a time.
type Progress struct {
	enabled       bool
	handler       Handler
	traceStrategy bool
	mu            sync.Mutex
}

// New creates a new progress reporter
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		handler = NewSimpleHandler(os.Stderr)
	}
	return &Progress{
		enabled: enabled,
		handler: handler,
	}
}

// EnableStrategyTracing reports every strategy attempt, not only outcomes
func (p *Progress) EnableStrategyTracing() {
	p.traceStrategy = true
}

// Report sends an event to the handler (only if enabled)
func (p *Progress) Report(event Event) {
	if p == nil || !p.enabled {
		return
	}
	if event.Type == EventStrategyAttempt && !p.traceStrategy {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler.Handle(event)
}

// Convenience methods for the command layer to report events

func (p *Progress) RunStart(html, selector string) {
	p.Report(Event{
		Type:   EventRunStart,
		Target: selector,
		Info:   html,
	})
}

func (p *Progress) RunComplete(count int, duration time.Duration) {
	p.Report(Event{
		Type:     EventRunComplete,
		Count:    count,
		Duration: duration,
	})
}

func (p *Progress) RulesLoaded(names []string) {
	p.Report(Event{
		Type:  EventRulesLoaded,
		Count: len(names),
		Info:  strings.Join(names, ", "),
	})
}

func (p *Progress) FileWriting(path string) {
	p.Report(Event{
		Type: EventFileWriting,
		Info: path,
	})
}

func (p *Progress) FileWritten(path string) {
	p.Report(Event{
		Type: EventFileWritten,
		Info: path,
	})
}

func (p *Progress) Info(message string) {
	p.Report(Event{
		Type: EventInfo,
		Info: message,
	})
}

// NullHandler discards all events (for disabled verbose mode)
type NullHandler struct{}

func NewNullHandler() *NullHandler {
	return &NullHandler{}
}

func (h *NullHandler) Handle(event Event) {
	// Do nothing
}
