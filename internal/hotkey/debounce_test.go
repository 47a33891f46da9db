package hotkey

import (
	"testing"
	"time"
)

func TestDebouncerSuppressesInsideWindow(t *testing.T) {
	d := NewDebouncer(350 * time.Millisecond)
	base := time.Now()

	if !d.Allow(base) {
		t.Fatal("first firing should be accepted")
	}
	if d.Allow(base.Add(100 * time.Millisecond)) {
		t.Error("firing 100ms after acceptance should be suppressed")
	}
	if d.Allow(base.Add(349 * time.Millisecond)) {
		t.Error("firing just inside the window should be suppressed")
	}
	if !d.Allow(base.Add(351 * time.Millisecond)) {
		t.Error("firing just outside the window should be accepted")
	}
}

func TestDebouncerResetsOnAcceptance(t *testing.T) {
	d := NewDebouncer(350 * time.Millisecond)
	base := time.Now()

	d.Allow(base)
	second := base.Add(400 * time.Millisecond)
	if !d.Allow(second) {
		t.Fatal("second firing outside the window should be accepted")
	}
	// Window restarts from the second acceptance, not the first.
	if d.Allow(second.Add(200 * time.Millisecond)) {
		t.Error("firing inside the restarted window should be suppressed")
	}
}

func TestDebouncerDefaultInterval(t *testing.T) {
	d := NewDebouncer(0)
	if d.interval != DefaultDebounce {
		t.Errorf("interval = %v, want %v", d.interval, DefaultDebounce)
	}
}
