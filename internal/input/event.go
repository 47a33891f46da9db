// Package input provides per-device adapters that turn OS-level keyboard,
// mouse, and joystick activity into a single stream of raw press/release
// events. Adapters are swappable: anything that can feed Events into a
// channel can stand in for a real device, which is how the tests drive the
// downstream pipeline.
package input

import (
	"context"
	"errors"
	"time"
)

// Kind identifies the device class an event came from.
type Kind int

const (
	Keyboard Kind = iota
	Mouse
	Joystick
)

var kindNames = map[Kind]string{
	Keyboard: "keyboard",
	Mouse:    "mouse",
	Joystick: "joystick",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Phase distinguishes press from release.
type Phase int

const (
	Pressed Phase = iota
	Released
)

// Event is one raw input occurrence. Identity is device-specific: the key
// name for keyboards, the button name for mice, and "<device>:<button>" for
// joysticks where <device> is the hardware GUID or an index fallback.
// Events are ephemeral; they are consumed immediately and never persisted.
type Event struct {
	Source   Kind
	Identity string
	Phase    Phase
	When     time.Time
}

// ErrUnavailable is returned by a Source whose device class cannot be
// initialized on this system. The caller disables that source and continues
// with the others.
var ErrUnavailable = errors.New("input device unavailable")

// Source is one device-class adapter. Run blocks, delivering events into out
// until ctx is cancelled; after Run returns no further events are sent and
// all device handles are released.
type Source interface {
	Name() string
	Run(ctx context.Context, out chan<- Event) error
}
