package hotkey

import "time"

// DefaultDebounce is the minimum interval between accepted firings, shared
// by every action kind.
const DefaultDebounce = 350 * time.Millisecond

// Debouncer suppresses repeated firings inside a minimum interval. Firings
// rejected inside the window are dropped, not queued. It is used from a
// single goroutine and needs no locking.
type Debouncer struct {
	interval time.Duration
	last     time.Time
}

func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{interval: interval}
}

// Allow reports whether a firing at the given time should be accepted. On
// acceptance the window resets.
func (d *Debouncer) Allow(now time.Time) bool {
	if !d.last.IsZero() && now.Sub(d.last) < d.interval {
		return false
	}
	d.last = now
	return true
}
