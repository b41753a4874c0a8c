// Package gesture turns pointer sequences into window drags or clicks.
package gesture

import (
	"math"
	"time"

	"github.com/frudas24/overlaydot/internal/relay"
)

const (
	// DefaultClickMaxDuration is the longest press still treated as a click.
	DefaultClickMaxDuration = 200 * time.Millisecond
	// DefaultClickMaxDistance is the farthest release, in pixels, still treated as a click.
	DefaultClickMaxDistance = 5.0
)

// Point is a screen coordinate.
type Point struct {
	X float64
	Y float64
}

// Thresholds bound what counts as a click. Both must hold.
type Thresholds struct {
	ClickMaxDuration time.Duration
	ClickMaxDistance float64
}

// DefaultThresholds returns the stock click thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ClickMaxDuration: DefaultClickMaxDuration,
		ClickMaxDistance: DefaultClickMaxDistance,
	}
}

// GestureState is the per-gesture state captured at pointer down.
// All coordinates are in screen space.
type GestureState struct {
	Dragging      bool
	StartPointerX float64
	StartPointerY float64
	StartWindowX  float64
	StartWindowY  float64
	StartedAt     time.Time
	// StartPos equals the start pointer at capture; it is only read at release.
	StartPos Point
}

// Tracker classifies pointer gestures for one widget and relays the result.
// It is not safe for concurrent use; callers serialize events.
type Tracker struct {
	relay      relay.Relay
	thresholds Thresholds
	state      GestureState
}

// NewTracker returns a tracker at rest that sends to r.
func NewTracker(r relay.Relay, th Thresholds) *Tracker {
	if r == nil {
		r = relay.Discard{}
	}
	if th.ClickMaxDuration <= 0 {
		th.ClickMaxDuration = DefaultClickMaxDuration
	}
	if th.ClickMaxDistance <= 0 {
		th.ClickMaxDistance = DefaultClickMaxDistance
	}
	return &Tracker{relay: r, thresholds: th}
}

// State returns a copy of the current gesture state.
func (t *Tracker) State() GestureState {
	return t.state
}

// Thresholds returns the click thresholds in use.
func (t *Tracker) Thresholds() Thresholds {
	return t.thresholds
}

// PointerDown starts a new gesture, discarding any stale one.
func (t *Tracker) PointerDown(localX, localY, screenX, screenY float64, now time.Time) {
	t.state = GestureState{
		Dragging:      true,
		StartPointerX: screenX,
		StartPointerY: screenY,
		StartWindowX:  screenX - localX,
		StartWindowY:  screenY - localY,
		StartedAt:     now,
		StartPos:      Point{X: screenX, Y: screenY},
	}
	t.relay.Send(relay.ChanDragStart)
}

// PointerMove relays the new window origin while dragging. It is a no-op
// otherwise, so it is safe to feed every pointer move in the process.
func (t *Tracker) PointerMove(screenX, screenY float64) {
	if !t.state.Dragging {
		return
	}
	x := t.state.StartWindowX + (screenX - t.state.StartPointerX)
	y := t.state.StartWindowY + (screenY - t.state.StartPointerY)
	t.relay.Send(relay.ChanMoveWindow, x, y)
}

// PointerUp ends the gesture. drag-end is always sent first; click-action
// follows only for a gesture that was active and passes the click test.
// It reports whether a click was detected.
func (t *Tracker) PointerUp(screenX, screenY float64, now time.Time) bool {
	t.relay.Send(relay.ChanDragEnd)

	clicked := false
	if t.state.Dragging {
		elapsed := now.Sub(t.state.StartedAt)
		dist := math.Hypot(screenX-t.state.StartPos.X, screenY-t.state.StartPos.Y)
		if elapsed < t.thresholds.ClickMaxDuration && dist < t.thresholds.ClickMaxDistance {
			clicked = true
			t.relay.Send(relay.ChanClickAction)
		}
	}
	t.state.Dragging = false
	return clicked
}

// PointerCancel aborts the gesture without a click.
func (t *Tracker) PointerCancel() {
	t.relay.Send(relay.ChanDragEnd)
	t.state.Dragging = false
}
