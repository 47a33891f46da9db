//go:build !linux

package input

import (
	"context"
	"fmt"
)

// JoystickSource is only implemented on Linux (evdev). Elsewhere the source
// reports itself unavailable and the remaining sources carry on.
type JoystickSource struct{}

func NewJoystickSource() *JoystickSource { return &JoystickSource{} }

func (s *JoystickSource) Name() string { return "joystick" }

func (s *JoystickSource) Run(ctx context.Context, out chan<- Event) error {
	return fmt.Errorf("joystick support on this platform: %w", ErrUnavailable)
}
