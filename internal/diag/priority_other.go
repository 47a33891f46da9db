//go:build !windows

package diag

// RaisePriority is a no-op off Windows; default scheduling is fine there.
func RaisePriority() error { return nil }
