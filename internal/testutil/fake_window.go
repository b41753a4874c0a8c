package testutil

import (
	"sync"

	"github.com/frudas24/overlaydot/internal/hostwin"
)

// WindowCall records a single window operation.
type WindowCall struct {
	Name    string
	X       int
	Y       int
	Enabled bool
}

// FakeWindow implements hostwin.Window and records calls for tests.
type FakeWindow struct {
	mu    sync.Mutex
	Calls []WindowCall
}

// Ensure FakeWindow implements the interface.
var _ hostwin.Window = (*FakeWindow)(nil)

// MoveTo records a window move.
func (f *FakeWindow) MoveTo(x, y int) error {
	f.record(WindowCall{Name: "MoveTo", X: x, Y: y})
	return nil
}

// SetClickThrough records a click-through change.
func (f *FakeWindow) SetClickThrough(enabled bool) error {
	f.record(WindowCall{Name: "SetClickThrough", Enabled: enabled})
	return nil
}

// ToggleCompanion records a companion toggle.
func (f *FakeWindow) ToggleCompanion() error {
	f.record(WindowCall{Name: "ToggleCompanion"})
	return nil
}

// Snapshot returns a copy of the recorded calls.
func (f *FakeWindow) Snapshot() []WindowCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]WindowCall(nil), f.Calls...)
}

// record appends a call under the lock.
func (f *FakeWindow) record(c WindowCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
}
