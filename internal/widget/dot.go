// Package widget hosts the overlay widgets that talk to the host process.
package widget

import (
	"sync"
	"time"

	"github.com/frudas24/overlaydot/internal/gesture"
	"github.com/frudas24/overlaydot/internal/pointer"
	"github.com/frudas24/overlaydot/internal/relay"
)

// Dot is the draggable launcher. A tap triggers click-action, a drag moves
// the overlay window. All tracker access is serialized by mu, so State may be
// read from any goroutine.
type Dot struct {
	mu      sync.Mutex
	tracker *gesture.Tracker
	unmount func()
}

// NewDot returns an unmounted dot relaying to r.
func NewDot(r relay.Relay, th gesture.Thresholds) *Dot {
	return &Dot{tracker: gesture.NewTracker(r, th)}
}

// PointerDown handles a press on the dot itself. Presses on an unmounted dot
// are ignored: without global listeners nothing would end the gesture.
func (d *Dot) PointerDown(localX, localY, screenX, screenY float64, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unmount == nil {
		return
	}
	d.tracker.PointerDown(localX, localY, screenX, screenY, now)
}

// State returns a copy of the dot's current gesture state.
func (d *Dot) State() gesture.GestureState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.State()
}

// Mounted reports whether the dot's global listeners are registered.
func (d *Dot) Mounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.unmount != nil
}

// Mount registers the dot's global move/up listeners on bus for the life of
// the widget. The returned function removes them; calling it again is a no-op.
// Mounting an already mounted dot returns the existing unmount function.
func (d *Dot) Mount(bus *pointer.Bus) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unmount != nil {
		return d.unmount
	}

	unsubscribe := bus.Subscribe(dotListener{d: d})
	var once sync.Once
	d.unmount = func() {
		once.Do(func() {
			unsubscribe()
			d.mu.Lock()
			defer d.mu.Unlock()
			d.unmount = nil
			if d.tracker.State().Dragging {
				d.tracker.PointerCancel()
			}
		})
	}
	return d.unmount
}

// WithMounted runs fn with the dot mounted on bus and unmounts on every exit
// path, including a panic in fn.
func (d *Dot) WithMounted(bus *pointer.Bus, fn func()) {
	unmount := d.Mount(bus)
	defer unmount()
	fn()
}

// dotListener adapts the dot to the bus listener interface.
type dotListener struct {
	d *Dot
}

// PointerMove forwards a global move to the dot's tracker.
func (l dotListener) PointerMove(screenX, screenY float64) {
	l.d.mu.Lock()
	defer l.d.mu.Unlock()
	l.d.tracker.PointerMove(screenX, screenY)
}

// PointerUp forwards a global release to the dot's tracker.
func (l dotListener) PointerUp(screenX, screenY float64, now time.Time) {
	l.d.mu.Lock()
	defer l.d.mu.Unlock()
	l.d.tracker.PointerUp(screenX, screenY, now)
}

// PointerCancel forwards a global cancel to the dot's tracker.
func (l dotListener) PointerCancel() {
	l.d.mu.Lock()
	defer l.d.mu.Unlock()
	l.d.tracker.PointerCancel()
}
