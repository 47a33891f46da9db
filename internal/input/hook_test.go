package input

import (
	"testing"
	"time"

	hook "github.com/robotn/gohook"
)

func TestPrimarySecondaryClicksNeverTranslate(t *testing.T) {
	for _, button := range []uint16{mouseLeft, mouseRight} {
		raw := hook.Event{Kind: hook.MouseDown, Button: button, When: time.Now()}
		if _, ok := translateHookEvent(raw); ok {
			t.Errorf("button %d translated to an event; left/right must be discarded", button)
		}
	}
}

func TestOtherMouseButtonsTranslate(t *testing.T) {
	tests := []struct {
		button uint16
		want   string
	}{
		{mouseMiddle, "middle"},
		{4, "x4"},
		{5, "x5"},
	}
	for _, tt := range tests {
		raw := hook.Event{Kind: hook.MouseDown, Button: tt.button, When: time.Now()}
		ev, ok := translateHookEvent(raw)
		if !ok {
			t.Errorf("button %d not translated", tt.button)
			continue
		}
		if ev.Source != Mouse || ev.Identity != tt.want || ev.Phase != Pressed {
			t.Errorf("button %d = {%v %q %v}, want {Mouse %q Pressed}",
				tt.button, ev.Source, ev.Identity, ev.Phase, tt.want)
		}
	}
}

func TestMouseMoveAndWheelCarryNoAction(t *testing.T) {
	for _, kind := range []uint8{hook.MouseMove, hook.MouseDrag, hook.MouseWheel, hook.MouseUp} {
		raw := hook.Event{Kind: kind, Button: mouseMiddle, When: time.Now()}
		if _, ok := translateHookEvent(raw); ok {
			t.Errorf("hook kind %d translated to an event", kind)
		}
	}
}

func TestKeyIdentityFallbacks(t *testing.T) {
	const unmapped = 0xfffe
	if hook.RawcodetoKeychar(unmapped) != "" {
		t.Skipf("platform keycode map claims rawcode %#x", unmapped)
	}
	if got := keyIdentity(unmapped, 'a'); got != "a" {
		t.Errorf("printable keychar fallback = %q, want %q", got, "a")
	}
	if got := keyIdentity(unmapped, 0); got != "key65534" {
		t.Errorf("rawcode fallback = %q, want %q", got, "key65534")
	}
}
