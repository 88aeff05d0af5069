package stream

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/sse"

	"github.com/polkiloo/marketplace/internal/notify"
)

// PingEvent is the keepalive event name.
const PingEvent = "ping"

// Conn is a server-sent events channel to one client. Events are queued in a
// bounded buffer and written by Serve.
type Conn struct {
	events chan sse.Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewConn creates a connection able to hold buffer pending events.
func NewConn(buffer int) *Conn {
	if buffer <= 0 {
		buffer = 1
	}
	return &Conn{
		events: make(chan sse.Event, buffer),
		done:   make(chan struct{}),
	}
}

// Send queues an event without blocking.
func (c *Conn) Send(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return notify.ErrConnClosed
	}
	select {
	case c.events <- sse.Event{Event: event, Data: payload}:
		return nil
	default:
		return notify.ErrConnBusy
	}
}

// Close marks the connection closed. It is safe to call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

// Done is closed once the connection is closed.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Serve writes queued events to w until ctx is cancelled, the connection is
// closed or a write fails. A ping event is written every keepAlive.
func (c *Conn) Serve(ctx context.Context, w io.Writer, keepAlive time.Duration) error {
	defer c.Close()

	var tick <-chan time.Time
	if keepAlive > 0 {
		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		case ev := <-c.events:
			if err := write(w, ev); err != nil {
				return err
			}
		case now := <-tick:
			if err := write(w, sse.Event{Event: PingEvent, Data: now.UTC().Format(time.RFC3339)}); err != nil {
				return err
			}
		}
	}
}

// write encodes ev into a buffer first: sse.Encode drops writer errors for
// plain string data.
func write(w io.Writer, ev sse.Event) error {
	var buf bytes.Buffer
	if err := sse.Encode(&buf, ev); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}

var _ notify.Conn = (*Conn)(nil)
