package widget

import (
	"testing"

	"github.com/frudas24/overlaydot/internal/relay"
	"github.com/frudas24/overlaydot/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

// TestSiblings_PassThrough verifies sibling commands are relayed unchanged.
func TestSiblings_PassThrough(t *testing.T) {
	rec := &testutil.FakeRelay{}
	s := NewSiblings(rec)
	s.ExpansionChanged(true)
	s.SetClickThrough(false)
	s.ToggleHub()

	want := []relay.Message{
		{Ch: relay.ChanExpansion, Args: []float64{1}},
		{Ch: relay.ChanSetClickThrough, Args: []float64{0}},
		{Ch: relay.ChanToggleHub},
	}
	if diff := cmp.Diff(want, rec.Calls); diff != "" {
		t.Fatalf("unexpected relay messages (-want +got):\n%s", diff)
	}
}

// TestSiblings_NilRelay verifies a nil relay discards silently.
func TestSiblings_NilRelay(t *testing.T) {
	NewSiblings(nil).ToggleHub()
}
