package control

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/frudas24/overlaydot/internal/pointer"
	"github.com/frudas24/overlaydot/internal/session"
	"github.com/frudas24/overlaydot/internal/widget"
	"github.com/gorilla/websocket"
)

// Server handles websocket control input. Messages of the active connection
// are handled one at a time on its read goroutine.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  *session.Session
	bus      *pointer.Bus
	dot      *widget.Dot
	siblings widget.Siblings
	now      func() time.Time
	conn     *websocket.Conn
}

// NewServer creates a control websocket server.
func NewServer(sess *session.Session, bus *pointer.Bus, dot *widget.Dot, siblings widget.Siblings) *Server {
	return &Server{
		session:  sess,
		bus:      bus,
		dot:      dot,
		siblings: siblings,
		now:      time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// SetNowFunc overrides the clock used to stamp events without a timestamp.
func (s *Server) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		log.Printf("control: %v", err)
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		s.handleMessage(msg)
	}
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection and ends any gesture it left open.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
	if s.dot.State().Dragging {
		s.bus.DispatchCancel()
	}
}

// Close drops the active control connection, if any. Its read loop then
// exits through cleanupConn, which ends any gesture left open.
func (s *Server) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// handleMessage dispatches a single control message.
func (s *Server) handleMessage(msg Message) {
	switch msg.T {
	case MsgDown:
		s.handlePointerDown(msg)
	case MsgMove:
		if s.session.InputEnabled() {
			s.bus.DispatchMove(msg.X, msg.Y)
		}
	case MsgUp:
		if s.session.InputEnabled() {
			s.bus.DispatchUp(msg.X, msg.Y, s.eventTime(msg))
		}
	case MsgCancel:
		s.bus.DispatchCancel()
	case MsgExpansion:
		if msg.Enabled != nil {
			s.session.SetExpanded(*msg.Enabled)
			s.siblings.ExpansionChanged(*msg.Enabled)
		}
	case MsgClickThrough:
		if msg.Enabled != nil {
			s.session.SetClickThrough(*msg.Enabled)
			s.siblings.SetClickThrough(*msg.Enabled)
		}
	case MsgToggleHub:
		s.siblings.ToggleHub()
	case MsgInputEnabled:
		if msg.Enabled != nil {
			s.session.SetInputEnabled(*msg.Enabled)
			if !*msg.Enabled && s.dot.State().Dragging {
				s.bus.DispatchCancel()
			}
		}
	}
}

// handlePointerDown starts a gesture on the targeted widget.
func (s *Server) handlePointerDown(msg Message) {
	if !s.session.InputEnabled() {
		return
	}
	if msg.ID != "" && msg.ID != DotID {
		return
	}
	s.dot.PointerDown(msg.LX, msg.LY, msg.X, msg.Y, s.eventTime(msg))
}

// eventTime returns the renderer timestamp when present, else the server clock.
func (s *Server) eventTime(msg Message) time.Time {
	if msg.TS > 0 {
		return time.UnixMilli(msg.TS)
	}
	return s.now()
}
