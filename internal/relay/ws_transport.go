package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultDialTimeout  = 2 * time.Second
	defaultWriteTimeout = time.Second
)

// ErrNoHost is returned when no host URL is configured.
var ErrNoHost = errors.New("relay host url not configured")

// WSTransport writes relay messages to the host over a websocket. The
// connection is dialed lazily and redialed after any failure.
type WSTransport struct {
	mu           sync.Mutex
	url          string
	header       http.Header
	dialer       websocket.Dialer
	writeTimeout time.Duration
	onState      func(connected bool)
	conn         *websocket.Conn
}

// NewWSTransport creates a transport for the host relay endpoint.
func NewWSTransport(url string, dialTimeout time.Duration, onState func(connected bool)) *WSTransport {
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &WSTransport{
		url: url,
		dialer: websocket.Dialer{
			HandshakeTimeout: dialTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  4096,
		},
		writeTimeout: defaultWriteTimeout,
		onState:      onState,
	}
}

// Write sends a single message, dialing first when needed.
func (t *WSTransport) Write(msg Message) error {
	// JSON has no NaN or Inf; such messages fail here without touching the connection.
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Ch, err)
	}
	conn, err := t.connect()
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.reset(conn)
		return err
	}
	return nil
}

// Connected reports whether a host connection is currently open.
func (t *WSTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil
}

// Close closes the active connection, if any.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()
	if conn == nil {
		return nil
	}
	t.notify(false)
	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(t.writeTimeout))
	return conn.Close()
}

// connect returns the active connection or dials a new one.
func (t *WSTransport) connect() (*websocket.Conn, error) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn != nil {
		return conn, nil
	}
	if t.url == "" {
		return nil, ErrNoHost
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.dialer.HandshakeTimeout)
	defer cancel()
	conn, _, err := t.dialer.DialContext(ctx, t.url, t.header)
	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", t.url, err)
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
	t.notify(true)
	go t.drain(conn)
	return conn, nil
}

// drain reads and discards inbound frames so control frames are processed
// and a closed host is noticed before the next write.
func (t *WSTransport) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			t.reset(conn)
			return
		}
	}
}

// reset drops conn if it is still the active connection.
func (t *WSTransport) reset(conn *websocket.Conn) {
	t.mu.Lock()
	active := t.conn == conn
	if active {
		t.conn = nil
	}
	t.mu.Unlock()
	_ = conn.Close()
	if active {
		t.notify(false)
	}
}

// notify reports a connection state change to the callback, if any.
func (t *WSTransport) notify(connected bool) {
	if t.onState != nil {
		t.onState(connected)
	}
}
