package profiler

import (
	"log"
	"time"
)

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithLogger sets where reports are written. Defaults to log.Default().
//
// Parameters:
//   - logger: destination for profiler output
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often stats are reported.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithBudget sets the duration above which a tick counts as slow. 0 disables slow tick counting.
//
// Parameters:
//   - budget: the per-tick time budget
//
// Returns:
//   - ProfilerOption: option function to apply
func WithBudget(budget time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.budget = budget
	}
}
