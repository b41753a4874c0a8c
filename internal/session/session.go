// Package session holds runtime state for the overlay process.
package session

import "sync"

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	InputEnabled   bool
	Expanded       bool
	ClickThrough   bool
	RelayConnected bool
}

// Session holds the overlay flags shared by the control server and the HTTP API.
type Session struct {
	mu             sync.RWMutex
	inputEnabled   bool
	expanded       bool
	clickThrough   bool
	relayConnected bool
}

// New returns a session with input enabled.
func New() *Session {
	return &Session{inputEnabled: true}
}

// SetInputEnabled toggles whether pointer input reaches the widgets.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether pointer input reaches the widgets.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// SetExpanded records the hub expansion state.
func (s *Session) SetExpanded(expanded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = expanded
}

// Expanded reports whether the hub is expanded.
func (s *Session) Expanded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expanded
}

// SetClickThrough records the last click-through command.
func (s *Session) SetClickThrough(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clickThrough = enabled
}

// ClickThrough reports the last click-through command.
func (s *Session) ClickThrough() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clickThrough
}

// SetRelayConnected records whether the host relay is connected.
func (s *Session) SetRelayConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relayConnected = connected
}

// RelayConnected reports whether the host relay is connected.
func (s *Session) RelayConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relayConnected
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		InputEnabled:   s.inputEnabled,
		Expanded:       s.expanded,
		ClickThrough:   s.clickThrough,
		RelayConnected: s.relayConnected,
	}
}
