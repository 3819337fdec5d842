package search

import (
	"sync"
	"time"
)

// DefaultDebounce is how long typing must pause before a suggestion
// fetch fires.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer collapses rapid successive calls into one. Only the
// function passed to the last Debounce call within the window runs.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a debouncer with the given quiet window. A
// nonpositive duration falls back to DefaultDebounce.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounce
	}
	return &Debouncer{duration: duration}
}

// Debounce schedules fn to run after the quiet window elapses without
// another call. Each call resets the timer.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
