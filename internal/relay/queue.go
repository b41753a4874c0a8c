package relay

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
)

const defaultQueueSize = 256

// ErrQueueClosed is returned by Close when the queue was already closed.
var ErrQueueClosed = errors.New("relay queue closed")

// Transport writes relay messages to the host.
type Transport interface {
	Write(msg Message) error
	Close() error
}

// Queue is an ordered, bounded outbound queue drained by a single writer.
type Queue struct {
	mu        sync.Mutex
	ch        chan Message
	closed    bool
	done      chan struct{}
	transport Transport
	dropped   atomic.Uint64
	debug     bool
}

// NewQueue starts a queue that writes to transport. size <= 0 uses a default.
func NewQueue(transport Transport, size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	q := &Queue{
		ch:        make(chan Message, size),
		done:      make(chan struct{}),
		transport: transport,
	}
	go q.run()
	return q
}

// SetDebug enables per-message logging.
func (q *Queue) SetDebug(enabled bool) {
	q.mu.Lock()
	q.debug = enabled
	q.mu.Unlock()
}

// Send enqueues a message without blocking. Messages are dropped when the
// queue is full or closed.
func (q *Queue) Send(channel string, args ...float64) {
	msg := Message{Ch: channel}
	if len(args) > 0 {
		msg.Args = append([]float64(nil), args...)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.dropped.Add(1)
		return
	}
	select {
	case q.ch <- msg:
	default:
		q.dropped.Add(1)
		log.Printf("relay: queue full, dropped %s", channel)
	}
}

// Dropped returns how many messages were discarded.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Close flushes pending messages, stops the writer and closes the transport.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	<-q.done
	return q.transport.Close()
}

// run writes queued messages in order until the queue is closed.
func (q *Queue) run() {
	defer close(q.done)
	for msg := range q.ch {
		if err := q.transport.Write(msg); err != nil {
			q.dropped.Add(1)
			log.Printf("relay: dropped %s: %v", msg.Ch, err)
			continue
		}
		if q.debugEnabled() {
			log.Printf("relay: sent %s %v", msg.Ch, msg.Args)
		}
	}
}

// debugEnabled reports whether per-message logging is on.
func (q *Queue) debugEnabled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.debug
}
