//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	evdev "github.com/gvalkov/golang-evdev"
	"golang.org/x/sys/unix"
)

const (
	devInputDir  = "/dev/input"
	joyPollDelay = 5 * time.Millisecond

	// evdev button code ranges that mark a device as a joystick/gamepad.
	btnJoystickFirst = 0x120 // BTN_JOYSTICK
	btnJoystickLast  = 0x12f
	btnGamepadFirst  = 0x130 // BTN_GAMEPAD
	btnGamepadLast   = 0x13f
)

// JoystickSource reads joystick/gamepad buttons from evdev devices. Devices
// are enumerated at start and tracked through hot-plug: added devices join
// identity resolution without restarting the listener, removed devices
// retire their identity. The identity table is only ever touched from the
// Run goroutine.
type JoystickSource struct {
	mu      sync.Mutex
	devices map[string]*joyDevice // keyed by /dev/input/eventN path
	nextIdx int
}

type joyDevice struct {
	dev      *evdev.InputDevice
	identity string // GUID, or "idxN" fallback
	cancel   context.CancelFunc
}

func NewJoystickSource() *JoystickSource {
	return &JoystickSource{devices: make(map[string]*joyDevice)}
}

func (s *JoystickSource) Name() string { return "joystick" }

// Run enumerates joystick devices and watches /dev/input for hot-plug until
// ctx is cancelled. Per-device reads use a short poll sleep so stop is
// observed within a bounded time.
func (s *JoystickSource) Run(ctx context.Context, out chan<- Event) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("joystick watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(devInputDir); err != nil {
		return fmt.Errorf("joystick watch %s: %w", devInputDir, err)
	}

	devs, err := evdev.ListInputDevices(filepath.Join(devInputDir, "event*"))
	if err != nil {
		return fmt.Errorf("joystick enumerate: %w", err)
	}
	for _, dev := range devs {
		s.addDevice(ctx, dev, out)
	}

	defer s.closeAll()
	for {
		select {
		case <-ctx.Done():
			return nil
		case fe, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(fe.Name), "event") {
				continue
			}
			switch {
			case fe.Op.Has(fsnotify.Create):
				// The node needs a moment before the driver accepts opens.
				time.Sleep(100 * time.Millisecond)
				if dev, err := evdev.Open(fe.Name); err == nil {
					s.addDevice(ctx, dev, out)
				}
			case fe.Op.Has(fsnotify.Remove):
				s.removeDevice(fe.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("joystick watch error: %v", err)
		}
	}
}

func (s *JoystickSource) addDevice(ctx context.Context, dev *evdev.InputDevice, out chan<- Event) {
	if !isJoystick(dev) {
		dev.File.Close()
		return
	}

	s.mu.Lock()
	if _, exists := s.devices[dev.Fn]; exists {
		s.mu.Unlock()
		dev.File.Close()
		return
	}
	identity := deviceGUID(dev)
	if identity == "" {
		identity = "idx" + strconv.Itoa(s.nextIdx)
	}
	s.nextIdx++
	dctx, cancel := context.WithCancel(ctx)
	jd := &joyDevice{dev: dev, identity: identity, cancel: cancel}
	s.devices[dev.Fn] = jd
	s.mu.Unlock()

	unix.SetNonblock(int(dev.File.Fd()), true)
	log.Printf("joystick attached: %s (%s) as %s", dev.Name, dev.Fn, identity)
	go s.readLoop(dctx, jd, out)
}

func (s *JoystickSource) removeDevice(path string) {
	s.mu.Lock()
	jd, ok := s.devices[path]
	if ok {
		delete(s.devices, path)
	}
	s.mu.Unlock()
	if ok {
		jd.cancel()
		jd.dev.File.Close()
		log.Printf("joystick detached: %s", path)
	}
}

func (s *JoystickSource) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path, jd := range s.devices {
		jd.cancel()
		jd.dev.File.Close()
		delete(s.devices, path)
	}
}

func (s *JoystickSource) readLoop(ctx context.Context, jd *joyDevice, out chan<- Event) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		events, err := jd.dev.Read()
		if err != nil {
			if isAgain(err) {
				time.Sleep(joyPollDelay)
				continue
			}
			return
		}
		for _, raw := range events {
			if raw.Type != evdev.EV_KEY {
				continue
			}
			btn, ok := buttonIndex(raw.Code)
			if !ok {
				continue
			}
			phase := Released
			if raw.Value == 1 {
				phase = Pressed
			}
			ev := Event{
				Source:   Joystick,
				Identity: jd.identity + ":" + strconv.Itoa(btn),
				Phase:    phase,
				When:     time.Now(),
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

// isJoystick reports whether the device exposes joystick or gamepad buttons.
func isJoystick(dev *evdev.InputDevice) bool {
	for capType, codes := range dev.Capabilities {
		if capType.Type != evdev.EV_KEY {
			continue
		}
		for _, code := range codes {
			if _, ok := buttonIndex(uint16(code.Code)); ok {
				return true
			}
		}
	}
	return false
}

// buttonIndex maps an evdev key code to a zero-based joystick button index.
func buttonIndex(code uint16) (int, bool) {
	switch {
	case code >= btnGamepadFirst && code <= btnGamepadLast:
		return int(code - btnGamepadFirst), true
	case code >= btnJoystickFirst && code <= btnJoystickLast:
		return int(code - btnJoystickFirst), true
	}
	return 0, false
}

// deviceGUID derives a stable hardware GUID from the evdev identifiers, in
// the same 16-byte little-endian layout SDL uses, so a binding follows the
// physical device across re-enumeration. Returns "" when the driver surfaces
// no identifiers; the caller falls back to a session-local index.
func deviceGUID(dev *evdev.InputDevice) string {
	if dev.Bustype == 0 && dev.Vendor == 0 && dev.Product == 0 {
		return ""
	}
	var b [16]byte
	binary.LittleEndian.PutUint16(b[0:], dev.Bustype)
	binary.LittleEndian.PutUint16(b[4:], dev.Vendor)
	binary.LittleEndian.PutUint16(b[8:], dev.Product)
	binary.LittleEndian.PutUint16(b[12:], dev.Version)
	return hex.EncodeToString(b[:])
}

func isAgain(err error) bool {
	return strings.Contains(err.Error(), "resource temporarily unavailable")
}
