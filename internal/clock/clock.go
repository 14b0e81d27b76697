// Package clock provides an abstraction for time operations to improve testability.
// Run reports carry wall-clock timestamps and durations; code that records
// them uses the Clock interface so tests can control time-dependent behavior.
package clock

import (
	"sync"
	"time"
)

// Clock is an interface for time operations.
// This allows code to be tested with mock clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}

// StubClock implements Clock with a scripted time source: every call to
// Now advances the reported time by a fixed step, so durations derived
// from it are fully deterministic. Safe for concurrent use.
type StubClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewStubClock creates a stub clock starting at start, advancing by step
// on each Now call.
func NewStubClock(start time.Time, step time.Duration) *StubClock {
	return &StubClock{current: start, step: step}
}

// Now returns the scripted current time and advances it by the step.
func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.current
	c.current = c.current.Add(c.step)
	return t
}

// Ensure StubClock implements Clock.
var _ Clock = (*StubClock)(nil)
