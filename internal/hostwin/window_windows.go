//go:build windows

package hostwin

import (
	"fmt"
	"syscall"

	"github.com/lxn/win"
)

// WinWindow controls top-level windows located by title.
type WinWindow struct {
	title          string
	companionTitle string
}

// NewWindow returns a controller for the overlay window and its companion hub.
func NewWindow(title, companionTitle string) (Window, error) {
	if title == "" {
		return nil, fmt.Errorf("overlay window title is required")
	}
	return &WinWindow{title: title, companionTitle: companionTitle}, nil
}

// MoveTo places the overlay window's origin at (x,y) without resizing it.
func (w *WinWindow) MoveTo(x, y int) error {
	hwnd, err := findWindow(w.title)
	if err != nil {
		return err
	}
	flags := uint32(win.SWP_NOSIZE | win.SWP_NOZORDER | win.SWP_NOACTIVATE)
	if !win.SetWindowPos(hwnd, 0, int32(x), int32(y), 0, 0, flags) {
		return fmt.Errorf("SetWindowPos failed: %d", win.GetLastError())
	}
	return nil
}

// SetClickThrough toggles WS_EX_TRANSPARENT so clicks fall through the overlay.
func (w *WinWindow) SetClickThrough(enabled bool) error {
	hwnd, err := findWindow(w.title)
	if err != nil {
		return err
	}
	style := win.GetWindowLong(hwnd, win.GWL_EXSTYLE)
	mask := int32(win.WS_EX_TRANSPARENT | win.WS_EX_LAYERED)
	if enabled {
		style |= mask
	} else {
		style &^= int32(win.WS_EX_TRANSPARENT)
	}
	win.SetWindowLong(hwnd, win.GWL_EXSTYLE, style)
	return nil
}

// ToggleCompanion shows the hub window when hidden and hides it when shown.
func (w *WinWindow) ToggleCompanion() error {
	if w.companionTitle == "" {
		return nil
	}
	hwnd, err := findWindow(w.companionTitle)
	if err != nil {
		return err
	}
	cmd := int32(win.SW_SHOW)
	if win.IsWindowVisible(hwnd) {
		cmd = win.SW_HIDE
	}
	win.ShowWindow(hwnd, cmd)
	return nil
}

// findWindow looks up a top-level window by exact title.
func findWindow(title string) (win.HWND, error) {
	name, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	hwnd := win.FindWindow(nil, name)
	if hwnd == 0 {
		return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}
	return hwnd, nil
}
