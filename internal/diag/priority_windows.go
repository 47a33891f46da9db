//go:build windows

package diag

import "golang.org/x/sys/windows"

// RaisePriority bumps the process to high priority so hook delivery stays
// responsive while a game hogs the CPU.
func RaisePriority() error {
	return windows.SetPriorityClass(windows.CurrentProcess(), windows.HIGH_PRIORITY_CLASS)
}
