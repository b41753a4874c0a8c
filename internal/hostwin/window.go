// Package hostwin moves and styles the overlay window for the host process.
package hostwin

import "errors"

// ErrUnsupported indicates native window control is not available.
var ErrUnsupported = errors.New("hostwin is only supported on Windows")

// ErrWindowNotFound indicates no top-level window matched the title.
var ErrWindowNotFound = errors.New("window not found")

// Window defines the window operations the host applies for relayed events.
type Window interface {
	MoveTo(x, y int) error
	SetClickThrough(enabled bool) error
	ToggleCompanion() error
}
