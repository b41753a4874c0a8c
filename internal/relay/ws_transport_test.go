package relay_test

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/frudas24/overlaydot/internal/relay"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

// newRelayHost starts a websocket server that forwards decoded messages to the returned channel.
func newRelayHost(t *testing.T) (string, <-chan relay.Message) {
	t.Helper()
	out := make(chan relay.Message, 16)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var msg relay.Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			out <- msg
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), out
}

// receive waits for the next message delivered to the test host.
func receive(t *testing.T, ch <-chan relay.Message) relay.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for relay message")
		return relay.Message{}
	}
}

// TestWSTransport_DeliversInOrder verifies queued messages arrive at the host in order.
func TestWSTransport_DeliversInOrder(t *testing.T) {
	url, received := newRelayHost(t)

	var mu sync.Mutex
	var states []bool
	tr := relay.NewWSTransport(url, time.Second, func(connected bool) {
		mu.Lock()
		states = append(states, connected)
		mu.Unlock()
	})
	q := relay.NewQueue(tr, 16)
	q.Send(relay.ChanDragStart)
	q.Send(relay.ChanMoveWindow, 140, 110)
	q.Send(relay.ChanDragEnd)

	want := []relay.Message{
		{Ch: relay.ChanDragStart},
		{Ch: relay.ChanMoveWindow, Args: []float64{140, 110}},
		{Ch: relay.ChanDragEnd},
	}
	var got []relay.Message
	for range want {
		got = append(got, receive(t, received))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected messages (-want +got):\n%s", diff)
	}

	if err := q.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(states) < 2 || !states[0] || states[len(states)-1] {
		t.Fatalf("expected connect then disconnect, got %v", states)
	}
}

// TestWSTransport_NoHost verifies an empty URL fails without dialing.
func TestWSTransport_NoHost(t *testing.T) {
	tr := relay.NewWSTransport("", 0, nil)
	if err := tr.Write(relay.Message{Ch: relay.ChanDragStart}); !errors.Is(err, relay.ErrNoHost) {
		t.Fatalf("expected ErrNoHost, got %v", err)
	}
}

// TestWSTransport_UnreachableHost verifies dial failures surface as errors.
func TestWSTransport_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	tr := relay.NewWSTransport(url, 200*time.Millisecond, nil)
	if err := tr.Write(relay.Message{Ch: relay.ChanDragStart}); err == nil {
		t.Fatalf("expected dial error")
	}
	if tr.Connected() {
		t.Fatalf("expected no connection")
	}
}

// TestWSTransport_NaNKeepsConnection verifies an unencodable message does not drop the link.
func TestWSTransport_NaNKeepsConnection(t *testing.T) {
	url, received := newRelayHost(t)
	tr := relay.NewWSTransport(url, time.Second, nil)
	defer tr.Close()

	if err := tr.Write(relay.Message{Ch: relay.ChanDragStart}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	receive(t, received)

	if err := tr.Write(relay.Message{Ch: relay.ChanMoveWindow, Args: []float64{math.NaN(), 1}}); err == nil {
		t.Fatalf("expected encode error for NaN")
	}
	if !tr.Connected() {
		t.Fatalf("expected connection kept after encode error")
	}
	if err := tr.Write(relay.Message{Ch: relay.ChanDragEnd}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if msg := receive(t, received); msg.Ch != relay.ChanDragEnd {
		t.Fatalf("expected drag-end, got %+v", msg)
	}
}
