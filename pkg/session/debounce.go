package session

import "time"

// Debouncer implements a quiet-period rule: work is ready once no Touch
// has happened for the quiet duration. Callers pass timestamps, so a
// Debouncer fits any event loop and tests need no real clock.
type Debouncer struct {
	quiet time.Duration
	last  time.Time
	armed bool
}

// NewDebouncer returns a disarmed Debouncer.
func NewDebouncer(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: max(quiet, 0)}
}

// Touch records activity at now and arms the debouncer.
func (d *Debouncer) Touch(now time.Time) {
	d.last = now
	d.armed = true
}

// Ready reports whether the debouncer is armed and quiet since the last
// Touch.
func (d *Debouncer) Ready(now time.Time) bool {
	return d.armed && now.Sub(d.last) >= d.quiet
}

// Armed reports whether a Touch is waiting to be cleared.
func (d *Debouncer) Armed() bool { return d.armed }

// Clear disarms the debouncer after the work ran.
func (d *Debouncer) Clear() {
	d.armed = false
}
