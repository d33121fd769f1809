// Package timing provides simple phase timing for conversion runs.
package timing

import "time"

// Timer tracks durations of named phases.
type Timer struct {
	start  time.Time
	phases []Phase
}

// Phase is a completed timed phase.
type Phase struct {
	Name     string
	Duration time.Duration
}

// New creates a Timer starting from now.
func New() *Timer {
	return &Timer{start: time.Now()}
}

// Mark records a named phase ending now. The duration is the time since
// the previous mark, or since the timer start for the first mark.
func (t *Timer) Mark(name string) {
	now := time.Now()
	var elapsed time.Duration
	for _, p := range t.phases {
		elapsed += p.Duration
	}
	t.phases = append(t.phases, Phase{Name: name, Duration: now.Sub(t.start) - elapsed})
}

// Total returns the elapsed time since timer creation.
func (t *Timer) Total() time.Duration {
	return time.Since(t.start)
}

// Phases returns all recorded phases.
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Attrs returns the phases plus total as alternating key/value pairs
// suitable for slog.
func (t *Timer) Attrs() []any {
	attrs := make([]any, 0, 2*len(t.phases)+2)
	for _, p := range t.phases {
		attrs = append(attrs, p.Name, p.Duration)
	}
	return append(attrs, "total", t.Total())
}
