package pointer

import (
	"testing"
	"time"
)

type countingListener struct {
	moves   int
	ups     int
	cancels int
	onMove  func()
}

// PointerMove counts moves.
func (c *countingListener) PointerMove(float64, float64) {
	c.moves++
	if c.onMove != nil {
		c.onMove()
	}
}

// PointerUp counts releases.
func (c *countingListener) PointerUp(float64, float64, time.Time) { c.ups++ }

// PointerCancel counts cancels.
func (c *countingListener) PointerCancel() { c.cancels++ }

// TestBus_DispatchReachesAllListeners verifies every subscriber gets every event.
func TestBus_DispatchReachesAllListeners(t *testing.T) {
	b := NewBus()
	a, c := &countingListener{}, &countingListener{}
	b.Subscribe(a)
	b.Subscribe(c)

	b.DispatchMove(1, 2)
	b.DispatchUp(1, 2, time.Now())
	b.DispatchCancel()

	for _, l := range []*countingListener{a, c} {
		if l.moves != 1 || l.ups != 1 || l.cancels != 1 {
			t.Fatalf("expected one of each event, got %+v", l)
		}
	}
}

// TestBus_UnsubscribeIsIdempotent verifies repeated unsubscribe removes only once.
func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	b := NewBus()
	a, c := &countingListener{}, &countingListener{}
	unsubA := b.Subscribe(a)
	b.Subscribe(c)

	unsubA()
	unsubA()
	if b.Len() != 1 {
		t.Fatalf("expected 1 listener, got %d", b.Len())
	}
	b.DispatchMove(0, 0)
	if a.moves != 0 || c.moves != 1 {
		t.Fatalf("expected only the remaining listener to move, got a=%d c=%d", a.moves, c.moves)
	}
}

// TestBus_NoLeakAcrossCycles verifies repeated subscribe/unsubscribe leaves no listeners.
func TestBus_NoLeakAcrossCycles(t *testing.T) {
	b := NewBus()
	for i := 0; i < 100; i++ {
		unsub := b.Subscribe(&countingListener{})
		unsub()
	}
	if b.Len() != 0 {
		t.Fatalf("expected no listeners, got %d", b.Len())
	}
}

// TestBus_UnsubscribeDuringDispatch verifies a listener may remove itself while handling an event.
func TestBus_UnsubscribeDuringDispatch(t *testing.T) {
	b := NewBus()
	l := &countingListener{}
	var unsub func()
	l.onMove = func() { unsub() }
	unsub = b.Subscribe(l)

	b.DispatchMove(0, 0)
	b.DispatchMove(0, 0)
	if l.moves != 1 {
		t.Fatalf("expected a single move before removal, got %d", l.moves)
	}
}
