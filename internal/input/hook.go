package input

import (
	"context"
	"fmt"
	"strconv"
	"unicode"

	hook "github.com/robotn/gohook"
)

// Mouse buttons as numbered by the OS hook (libuiohook): 1 left, 2 right,
// 3 middle, 4+ extra buttons. Left and right clicks are reserved for normal
// UI interaction and are discarded here, at the source.
const (
	mouseLeft   = 1
	mouseRight  = 2
	mouseMiddle = 3
)

// HookSource adapts the global OS keyboard/mouse hook into the Event stream.
// One hook delivers both device classes, so a single source covers keyboard
// and mouse.
type HookSource struct{}

func NewHookSource() *HookSource { return &HookSource{} }

func (s *HookSource) Name() string { return "hook" }

// Run installs the hook and translates its events until ctx is cancelled.
// The hook is uninstalled before Run returns, so no events are delivered
// afterwards.
func (s *HookSource) Run(ctx context.Context, out chan<- Event) error {
	evs := hook.Start()
	if evs == nil {
		return fmt.Errorf("keyboard/mouse hook: %w", ErrUnavailable)
	}
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-evs:
			if !ok {
				return nil
			}
			ev, ok := translateHookEvent(raw)
			if !ok {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// translateHookEvent converts one raw hook event into an Event, reporting
// ok=false for events that carry no action (moves, drags, repeats, ignored
// buttons).
func translateHookEvent(raw hook.Event) (Event, bool) {
	switch raw.Kind {
	case hook.KeyDown:
		id := keyIdentity(raw.Rawcode, raw.Keychar)
		if id == "" {
			return Event{}, false
		}
		return Event{Source: Keyboard, Identity: id, Phase: Pressed, When: raw.When}, true
	case hook.KeyUp:
		id := keyIdentity(raw.Rawcode, raw.Keychar)
		if id == "" {
			return Event{}, false
		}
		return Event{Source: Keyboard, Identity: id, Phase: Released, When: raw.When}, true
	case hook.MouseDown:
		name, ok := mouseButtonName(raw.Button)
		if !ok {
			return Event{}, false
		}
		return Event{Source: Mouse, Identity: name, Phase: Pressed, When: raw.When}, true
	}
	return Event{}, false
}

// keyIdentity resolves a hook keyboard event to a raw identity string. The
// platform keycode map is preferred; printable key characters are the
// fallback, then the bare rawcode so unknown keys still bind.
func keyIdentity(rawcode uint16, keychar rune) string {
	if s := hook.RawcodetoKeychar(rawcode); s != "" {
		return s
	}
	if keychar != 0 && unicode.IsPrint(keychar) {
		return string(keychar)
	}
	if rawcode == 0 {
		return ""
	}
	return "key" + strconv.Itoa(int(rawcode))
}

// mouseButtonName names a hook mouse button, discarding primary and
// secondary clicks.
func mouseButtonName(button uint16) (string, bool) {
	switch button {
	case mouseLeft, mouseRight:
		return "", false
	case mouseMiddle:
		return "middle", true
	case 0:
		return "", false
	default:
		return "x" + strconv.Itoa(int(button)), true
	}
}
