// Package host receives relayed overlay events and applies them to the overlay window.
package host

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/frudas24/overlaydot/internal/hostwin"
	"github.com/frudas24/overlaydot/internal/relay"
	"github.com/gorilla/websocket"
)

// ConnPolicy controls how additional overlay connections are handled.
type ConnPolicy int

const (
	// ConnReject rejects new connections when one is active.
	ConnReject ConnPolicy = iota
	// ConnReplace closes the active connection when a new one arrives.
	ConnReplace
)

// Stats counts relayed events by outcome.
type Stats struct {
	Moves    int
	Clicks   int
	Dragging bool
}

// Server accepts the overlay's relay connection and dispatches its messages.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	window   hostwin.Window
	policy   ConnPolicy
	onClick  func()
	conn     *websocket.Conn
	stats    Stats
}

// NewServer creates a relay receiver applying events to window.
func NewServer(window hostwin.Window, policy ConnPolicy) *Server {
	return &Server{
		window: window,
		policy: policy,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// OnClick registers a callback for click-action events.
func (s *Server) OnClick(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClick = fn
}

// Stats returns a copy of the event counters.
func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// ServeHTTP upgrades the request and reads relay messages until it closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.rejectConn(conn, err.Error())
		return
	}
	defer s.cleanupConn(conn)

	for {
		var msg relay.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(msg); err != nil {
			log.Printf("host: %s: %v", msg.Ch, err)
		}
	}
}

// acceptConn registers a new websocket connection or returns an error.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		switch s.policy {
		case ConnReplace:
			_ = s.conn.Close()
			s.conn = nil
		default:
			return fmt.Errorf("overlay already connected")
		}
	}
	s.conn = conn
	return nil
}

// rejectConn sends a policy violation close and closes the socket.
func (s *Server) rejectConn(conn *websocket.Conn, reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(1*time.Second))
	_ = conn.Close()
}

// cleanupConn clears state if the connection is still the active one.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
		s.stats.Dragging = false
	}
	s.mu.Unlock()
	_ = conn.Close()
}

// handleMessage applies a single relayed event.
func (s *Server) handleMessage(msg relay.Message) error {
	switch msg.Ch {
	case relay.ChanDragStart:
		s.setDragging(true)
		return nil
	case relay.ChanDragEnd:
		s.setDragging(false)
		return nil
	case relay.ChanMoveWindow:
		return s.handleMove(msg.Args)
	case relay.ChanClickAction:
		return s.handleClick()
	case relay.ChanSetClickThrough:
		enabled, err := boolArg(msg.Args)
		if err != nil {
			return err
		}
		return s.window.SetClickThrough(enabled)
	case relay.ChanToggleHub:
		return s.window.ToggleCompanion()
	case relay.ChanExpansion:
		enabled, err := boolArg(msg.Args)
		if err != nil {
			return err
		}
		log.Printf("host: hub expanded=%t", enabled)
		return nil
	default:
		log.Printf("host: ignoring %q", msg.Ch)
		return nil
	}
}

// handleMove moves the overlay window to the relayed origin.
func (s *Server) handleMove(args []float64) error {
	if len(args) != 2 {
		return fmt.Errorf("move-window expects 2 args, got %d", len(args))
	}
	x, y := args[0], args[1]
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return fmt.Errorf("move-window with non-finite origin (%v,%v)", x, y)
	}
	s.mu.Lock()
	s.stats.Moves++
	s.mu.Unlock()
	return s.window.MoveTo(int(math.Round(x)), int(math.Round(y)))
}

// handleClick toggles the companion hub and notifies the click callback.
func (s *Server) handleClick() error {
	s.mu.Lock()
	s.stats.Clicks++
	onClick := s.onClick
	s.mu.Unlock()
	if onClick != nil {
		onClick()
	}
	return s.window.ToggleCompanion()
}

// setDragging records whether the overlay reports a drag in progress.
func (s *Server) setDragging(dragging bool) {
	s.mu.Lock()
	s.stats.Dragging = dragging
	s.mu.Unlock()
}

// boolArg decodes a single 0/1 flag argument.
func boolArg(args []float64) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("expected 1 arg, got %d", len(args))
	}
	return args[0] != 0, nil
}
