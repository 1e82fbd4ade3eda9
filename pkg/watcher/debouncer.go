// Package watcher reloads annotation documents when their files change.
// Change events are debounced, and polling takes over when the platform
// has no usable file notifications.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window
const DefaultDebounceDuration = 150 * time.Millisecond

// Debouncer coalesces a burst of triggers into one callback run after the
// window elapses
type Debouncer struct {
	duration time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	seq     uint64
}

// NewDebouncer creates a Debouncer. A zero duration selects DefaultDebounceDuration.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules callback, replacing whatever was scheduled before
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	d.pending = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		if cb := d.take(seq); cb != nil {
			cb()
		}
	})
}

// take hands out the pending callback if seq is still the latest trigger.
// A timer whose Stop lost the race against firing sees a newer seq and
// does nothing.
func (d *Debouncer) take(seq uint64) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq || d.pending == nil {
		return nil
	}
	cb := d.pending
	d.pending = nil
	d.timer = nil
	return cb
}

// Flush runs the pending callback now, on the calling goroutine. Returns
// false when nothing was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	cb := d.pending
	d.seq++
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if cb == nil {
		return false
	}
	cb()
	return true
}

// Cancel drops the pending callback
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Duration returns the debounce window
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
