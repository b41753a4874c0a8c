// Package app wires the relay, widgets, control server and HTTP routes together.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/frudas24/overlaydot/internal/config"
	"github.com/frudas24/overlaydot/internal/control"
	"github.com/frudas24/overlaydot/internal/gesture"
	"github.com/frudas24/overlaydot/internal/pointer"
	"github.com/frudas24/overlaydot/internal/relay"
	"github.com/frudas24/overlaydot/internal/session"
	"github.com/frudas24/overlaydot/internal/widget"
)

// App coordinates the overlay widgets and their control and relay channels.
type App struct {
	mu      sync.Mutex
	cfg     config.Config
	session *session.Session
	relay   relay.Relay
	bus     *pointer.Bus
	dot     *widget.Dot
	control *control.Server
	unmount func()
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, r relay.Relay) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if r == nil {
		return nil, errors.New("relay is required")
	}

	th := gesture.Thresholds{
		ClickMaxDuration: cfg.ClickMaxDuration(),
		ClickMaxDistance: cfg.ClickMaxDistance,
	}
	bus := pointer.NewBus()
	dot := widget.NewDot(r, th)

	return &App{
		cfg:     cfg,
		session: sess,
		relay:   r,
		bus:     bus,
		dot:     dot,
		control: control.NewServer(sess, bus, dot, widget.NewSiblings(r)),
	}, nil
}

// Start mounts the widgets on the pointer bus.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.unmount != nil {
		return errors.New("app already started")
	}
	a.unmount = a.dot.Mount(a.bus)
	return nil
}

// Stop drops the renderer connection and unmounts the widgets. It is safe to
// call more than once.
func (a *App) Stop() error {
	a.mu.Lock()
	unmount := a.unmount
	a.unmount = nil
	a.mu.Unlock()
	if unmount == nil {
		return nil
	}
	err := a.control.Close()
	unmount()
	if err != nil {
		return fmt.Errorf("close control connection: %w", err)
	}
	return nil
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// Dot returns the launcher widget.
func (a *App) Dot() *widget.Dot {
	return a.dot
}

// Bus returns the pointer bus.
func (a *App) Bus() *pointer.Bus {
	return a.bus
}
