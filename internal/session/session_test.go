package session

import "testing"

// TestNew_InputEnabledByDefault verifies a fresh session accepts input.
func TestNew_InputEnabledByDefault(t *testing.T) {
	s := New()
	if !s.InputEnabled() {
		t.Fatalf("expected input enabled")
	}
	if s.Expanded() || s.ClickThrough() || s.RelayConnected() {
		t.Fatalf("expected other flags cleared, got %+v", s.Snapshot())
	}
}

// TestSetters_ReflectInSnapshot verifies setters are visible in snapshots.
func TestSetters_ReflectInSnapshot(t *testing.T) {
	s := New()
	s.SetInputEnabled(false)
	s.SetExpanded(true)
	s.SetClickThrough(true)
	s.SetRelayConnected(true)

	want := Snapshot{InputEnabled: false, Expanded: true, ClickThrough: true, RelayConnected: true}
	if got := s.Snapshot(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}
