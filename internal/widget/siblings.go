package widget

import "github.com/frudas24/overlaydot/internal/relay"

// Siblings forwards the hub and panel notifications straight to the host.
type Siblings struct {
	relay relay.Relay
}

// NewSiblings returns a pass-through for sibling widget commands.
func NewSiblings(r relay.Relay) Siblings {
	if r == nil {
		r = relay.Discard{}
	}
	return Siblings{relay: r}
}

// ExpansionChanged reports that the hub menu expanded or collapsed.
func (s Siblings) ExpansionChanged(expanded bool) {
	s.relay.Send(relay.ChanExpansion, relay.Bool(expanded))
}

// SetClickThrough asks the host to let clicks pass through the overlay.
func (s Siblings) SetClickThrough(enabled bool) {
	s.relay.Send(relay.ChanSetClickThrough, relay.Bool(enabled))
}

// ToggleHub asks the host to show or hide the hub window.
func (s Siblings) ToggleHub() {
	s.relay.Send(relay.ChanToggleHub)
}
