// Package relay delivers overlay events to the host process.
package relay

// Channel names understood by the host process.
const (
	ChanDragStart       = "drag-start"
	ChanMoveWindow      = "move-window"
	ChanDragEnd         = "drag-end"
	ChanClickAction     = "click-action"
	ChanExpansion       = "expansion-changed"
	ChanSetClickThrough = "set-click-through"
	ChanToggleHub       = "toggle-hub"
)

// Relay is a send-only channel to the host. Send must not block and reports
// nothing about delivery.
type Relay interface {
	Send(channel string, args ...float64)
}

// Message is a single relayed event on the wire.
type Message struct {
	Ch   string    `json:"ch"`
	Args []float64 `json:"args,omitempty"`
}

// Discard drops every message. It stands in when no host is configured.
type Discard struct{}

// Send drops the message.
func (Discard) Send(string, ...float64) {}

// Bool encodes a flag as a relay argument.
func Bool(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
