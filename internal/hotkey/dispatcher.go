package hotkey

import (
	"context"
	"time"

	"github.com/RE4CT-SC/388-Client/internal/input"
)

// Dispatcher merges the raw event stream from all input sources into one
// debounced token stream. Keyboard combos accumulate in a held set and are
// finalized on the first release of any key in the combo, so a combo fires
// once per press-and-release cycle. Mouse and joystick buttons fire on
// press. One debounce window covers every source: whichever source's event
// survives it first wins.
type Dispatcher struct {
	events <-chan input.Event
	tokens chan Token
	deb    *Debouncer
	held   map[string]struct{}
}

func NewDispatcher(events <-chan input.Event, debounce time.Duration) *Dispatcher {
	return &Dispatcher{
		events: events,
		tokens: make(chan Token, 8),
		deb:    NewDebouncer(debounce),
		held:   make(map[string]struct{}),
	}
}

// Tokens is the stream of accepted firings.
func (d *Dispatcher) Tokens() <-chan Token { return d.tokens }

// Run processes events until ctx is cancelled. Canonicalization, debounce,
// and dispatch happen strictly in sequence on this goroutine; controller
// state is never touched directly.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.events:
			if !ok {
				return
			}
			d.handle(ctx, ev)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev input.Event) {
	switch ev.Source {
	case input.Keyboard:
		switch ev.Phase {
		case input.Pressed:
			if id := Normalize(ev.Identity); id != "" {
				d.held[id] = struct{}{}
			}
		case input.Released:
			if len(d.held) == 0 {
				return
			}
			tok := Combine(d.held)
			d.held = make(map[string]struct{})
			d.emit(ctx, tok, ev.When)
		}
	case input.Mouse:
		if ev.Phase == input.Pressed {
			d.emit(ctx, MouseToken(ev.Identity), ev.When)
		}
	case input.Joystick:
		if ev.Phase == input.Pressed {
			d.emit(ctx, Token(joystickPrefix+ev.Identity), ev.When)
		}
	}
}

func (d *Dispatcher) emit(ctx context.Context, tok Token, when time.Time) {
	if tok == "" || !d.deb.Allow(when) {
		return
	}
	select {
	case d.tokens <- tok:
	case <-ctx.Done():
	}
}

// Drain discards every queued token without blocking. Called when the token
// stream changes consumers, so firings queued for the old consumer are not
// replayed to the new one.
func Drain(tokens <-chan Token) {
	for {
		select {
		case <-tokens:
		default:
			return
		}
	}
}
