//go:build integration

package mock

import (
	"sync"
	"time"
)

// Time is a settable clock. Until SetCurrentTime is called it follows the wall clock.
type Time struct {
	mu      sync.RWMutex
	current time.Time
	fixed   bool
}

// NewTime creates a clock following the wall clock.
func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime freezes the clock at currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
	t.fixed = true
}

// Reset makes the clock follow the wall clock again.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fixed = false
}

// Now returns the current time of the clock.
func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.fixed {
		return t.current
	}
	return time.Now()
}
