// Package testutil provides recording fakes for tests.
package testutil

import (
	"sync"

	"github.com/frudas24/overlaydot/internal/relay"
)

// FakeRelay implements relay.Relay and records every send.
type FakeRelay struct {
	mu    sync.Mutex
	Calls []relay.Message
}

// Ensure FakeRelay implements the interface.
var _ relay.Relay = (*FakeRelay)(nil)

// Send records the message.
func (f *FakeRelay) Send(channel string, args ...float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := relay.Message{Ch: channel}
	if len(args) > 0 {
		msg.Args = append([]float64(nil), args...)
	}
	f.Calls = append(f.Calls, msg)
}

// Channels returns the recorded channel names in order.
func (f *FakeRelay) Channels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Ch
	}
	return out
}

// Reset clears recorded calls.
func (f *FakeRelay) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}

// FakeTransport implements relay.Transport and records written messages.
type FakeTransport struct {
	mu      sync.Mutex
	Written []relay.Message
	Err     error
	Closed  bool
	// Block, when set, stalls Write until it is closed.
	Block chan struct{}
}

// Ensure FakeTransport implements the interface.
var _ relay.Transport = (*FakeTransport)(nil)

// Write records msg or returns Err.
func (f *FakeTransport) Write(msg relay.Message) error {
	if f.Block != nil {
		<-f.Block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Written = append(f.Written, msg)
	return nil
}

// Close marks the transport closed.
func (f *FakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Messages returns a copy of the written messages.
func (f *FakeTransport) Messages() []relay.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]relay.Message(nil), f.Written...)
}
