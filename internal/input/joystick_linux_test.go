//go:build linux

package input

import (
	"testing"

	evdev "github.com/gvalkov/golang-evdev"
)

func TestDeviceGUIDStableAcrossEnumeration(t *testing.T) {
	// Same physical device appearing at different event nodes must resolve
	// to the same identity, so a GUID-captured binding still fires after
	// the device re-enumerates at another index.
	first := &evdev.InputDevice{Fn: "/dev/input/event7", Bustype: 0x03, Vendor: 0x045e, Product: 0x028e, Version: 0x0114}
	second := &evdev.InputDevice{Fn: "/dev/input/event2", Bustype: 0x03, Vendor: 0x045e, Product: 0x028e, Version: 0x0114}

	g1, g2 := deviceGUID(first), deviceGUID(second)
	if g1 == "" || g1 != g2 {
		t.Errorf("GUIDs differ across enumeration: %q vs %q", g1, g2)
	}
}

func TestDeviceGUIDDistinguishesHardware(t *testing.T) {
	a := &evdev.InputDevice{Bustype: 0x03, Vendor: 0x045e, Product: 0x028e, Version: 0x0114}
	b := &evdev.InputDevice{Bustype: 0x03, Vendor: 0x054c, Product: 0x09cc, Version: 0x8111}
	if deviceGUID(a) == deviceGUID(b) {
		t.Error("different hardware produced the same GUID")
	}
}

func TestDeviceGUIDFallback(t *testing.T) {
	bare := &evdev.InputDevice{}
	if got := deviceGUID(bare); got != "" {
		t.Errorf("deviceGUID with no ids = %q, want empty (index fallback)", got)
	}
}

func TestButtonIndex(t *testing.T) {
	tests := []struct {
		code uint16
		want int
		ok   bool
	}{
		{btnJoystickFirst, 0, true},
		{btnJoystickFirst + 3, 3, true},
		{btnGamepadFirst, 0, true},
		{btnGamepadFirst + 7, 7, true},
		{0x100, 0, false}, // BTN_MISC range
		{0x110, 0, false}, // BTN_LEFT: mouse, not joystick
	}
	for _, tt := range tests {
		got, ok := buttonIndex(tt.code)
		if got != tt.want || ok != tt.ok {
			t.Errorf("buttonIndex(%#x) = (%d, %v), want (%d, %v)", tt.code, got, ok, tt.want, tt.ok)
		}
	}
}
