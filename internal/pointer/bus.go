// Package pointer fans out process-wide pointer events to registered listeners.
package pointer

import (
	"sync"
	"time"
)

// Listener receives pointer events that are not scoped to any widget.
type Listener interface {
	PointerMove(screenX, screenY float64)
	PointerUp(screenX, screenY float64, now time.Time)
	PointerCancel()
}

// Bus holds the global pointer listeners. Dispatch happens on the caller's
// goroutine, in subscription order.
type Bus struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []entry
}

type entry struct {
	id uint64
	l  Listener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers l and returns a function that removes it. The returned
// function may be called more than once.
func (b *Bus) Subscribe(l Listener) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, entry{id: id, l: l})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// DispatchMove delivers a pointer move to every listener.
func (b *Bus) DispatchMove(screenX, screenY float64) {
	for _, l := range b.snapshot() {
		l.PointerMove(screenX, screenY)
	}
}

// DispatchUp delivers a pointer release to every listener.
func (b *Bus) DispatchUp(screenX, screenY float64, now time.Time) {
	for _, l := range b.snapshot() {
		l.PointerUp(screenX, screenY, now)
	}
}

// DispatchCancel delivers a pointer cancel to every listener.
func (b *Bus) DispatchCancel() {
	for _, l := range b.snapshot() {
		l.PointerCancel()
	}
}

// snapshot copies the listener list so handlers may unsubscribe during dispatch.
func (b *Bus) snapshot() []Listener {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Listener, len(b.listeners))
	for i, e := range b.listeners {
		out[i] = e.l
	}
	return out
}

// remove drops the listener registered under id.
func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.listeners {
		if e.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}
