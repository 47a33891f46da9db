package hotkey

import "testing"

func TestCombineOrderIndependence(t *testing.T) {
	orders := [][]string{
		{"ctrl", "shift", "w"},
		{"shift", "w", "ctrl"},
		{"w", "ctrl", "shift"},
		{"w", "shift", "ctrl"},
		{"ctrl", "w", "shift"},
		{"shift", "ctrl", "w"},
	}

	want := Token("ctrl+shift+w")
	for _, order := range orders {
		held := make(map[string]struct{})
		for _, k := range order {
			held[Normalize(k)] = struct{}{}
		}
		if got := Combine(held); got != want {
			t.Errorf("Combine(%v) = %q, want %q", order, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lctrl", "ctrl"},
		{"rctrl", "ctrl"},
		{"LShift", "shift"},
		{"ralt", "alt"},
		{"rcmd", "super"},
		{"win", "super"},
		{"(", "9"},
		{"!", "1"},
		{"?", "/"},
		{"A", "a"},
		{"f5", "f5"},
		{"  space ", "space"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShiftedVariantsCollapse(t *testing.T) {
	a := map[string]struct{}{Normalize("shift"): {}, Normalize("9"): {}}
	b := map[string]struct{}{Normalize("lshift"): {}, Normalize("("): {}}
	if Combine(a) != Combine(b) {
		t.Errorf("shifted variant tokens differ: %q vs %q", Combine(a), Combine(b))
	}
}

func TestTokenPrefixesNeverCollide(t *testing.T) {
	mouse := MouseToken("middle")
	joy := JoystickToken("03000000100800000100000010010000", 3)
	held := map[string]struct{}{"middle": {}}
	kb := Combine(held)

	if mouse == kb || joy == kb || mouse == joy {
		t.Errorf("token classes collide: mouse=%q joy=%q keyboard=%q", mouse, joy, kb)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token("ctrl+shift+w"), "Ctrl + Shift + W"},
		{MouseToken("middle"), "Mouse Middle"},
		{JoystickToken("03000000100800000100000010010000", 3), "Joystick Button 3"},
		{JoystickToken("idx0", 7), "Joystick Button 7"},
		{Token(""), "Not Set"},
	}
	for _, tt := range tests {
		if got := tt.tok.Display(); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}
