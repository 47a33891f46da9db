package hotkey

import (
	"sort"
	"strconv"
	"strings"
)

// Token is the canonical string form of one logical input action. Keyboard
// combos are normalized identities sorted lexicographically and joined with
// "+", so any press order of the same combo yields the same token. Mouse and
// joystick tokens carry a class prefix so they can never collide with a
// keyboard combo.
type Token string

const (
	mousePrefix    = "btn:"
	joystickPrefix = "joy:"
	comboSeparator = "+"
)

// shiftedKeys maps shifted US-layout symbols back to the unshifted key, so
// e.g. "(" and "9" canonicalize to the same identity regardless of whether
// shift was reported with the press.
var shiftedKeys = map[string]string{
	"!": "1", "@": "2", "#": "3", "$": "4", "%": "5",
	"^": "6", "&": "7", "*": "8", "(": "9", ")": "0",
	"_": "-", "+": "=", "{": "[", "}": "]", "|": "\\",
	":": ";", "\"": "'", "<": ",", ">": ".", "?": "/",
	"~": "`",
}

// modifierAliases collapses left/right and platform variants of a modifier
// to one canonical name.
var modifierAliases = map[string]string{
	"lctrl": "ctrl", "rctrl": "ctrl", "control": "ctrl",
	"lshift": "shift", "rshift": "shift",
	"lalt": "alt", "ralt": "alt", "option": "alt",
	"lcmd": "super", "rcmd": "super", "cmd": "super",
	"lwin": "super", "rwin": "super", "win": "super",
	"meta": "super",
}

// Normalize converts a raw keyboard identity into its canonical,
// layout-independent form.
func Normalize(identity string) string {
	s := strings.ToLower(strings.TrimSpace(identity))
	if s == "" {
		return ""
	}
	if m, ok := modifierAliases[s]; ok {
		return m
	}
	if u, ok := shiftedKeys[s]; ok {
		return u
	}
	return s
}

// Combine derives the token for a set of simultaneously held, already
// normalized keyboard identities. The sort makes derivation commutative over
// press order.
func Combine(held map[string]struct{}) Token {
	if len(held) == 0 {
		return ""
	}
	parts := make([]string, 0, len(held))
	for k := range held {
		parts = append(parts, k)
	}
	sort.Strings(parts)
	return Token(strings.Join(parts, comboSeparator))
}

// MouseToken derives the token for a single mouse button press.
func MouseToken(button string) Token {
	return Token(mousePrefix + strings.ToLower(button))
}

// JoystickToken derives the token for a joystick button press. Device is the
// hardware GUID when resolvable, or the session-local "idxN" fallback.
func JoystickToken(device string, button int) Token {
	return Token(joystickPrefix + device + ":" + strconv.Itoa(button))
}

// Display renders the token for humans, e.g. "ctrl+shift+w" becomes
// "Ctrl + Shift + W" and "btn:middle" becomes "Mouse Middle".
func (t Token) Display() string {
	s := string(t)
	switch {
	case s == "":
		return "Not Set"
	case strings.HasPrefix(s, mousePrefix):
		return "Mouse " + titleWord(strings.TrimPrefix(s, mousePrefix))
	case strings.HasPrefix(s, joystickPrefix):
		parts := strings.Split(s, ":")
		return "Joystick Button " + parts[len(parts)-1]
	default:
		parts := strings.Split(s, comboSeparator)
		for i, p := range parts {
			parts[i] = titleWord(p)
		}
		return strings.Join(parts, " + ")
	}
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
