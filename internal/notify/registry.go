package notify

import (
	"errors"
	"sync"
)

// ErrConnClosed is returned by Conn implementations after the client went away.
var ErrConnClosed = errors.New("connection closed")

// ErrConnBusy is returned when the connection cannot accept another event
// without blocking.
var ErrConnBusy = errors.New("connection buffer full")

// Conn is a live channel to a connected seller. Send must not block.
type Conn interface {
	Send(event string, payload any) error
}

// Registry maps seller ids to their current live connection.
// At most one connection per seller is kept; the latest registration wins.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

// NewRegistry creates empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Conn)}
}

// Register binds conn to sellerID, replacing any previous connection.
func (r *Registry) Register(sellerID string, conn Conn) {
	if sellerID == "" || conn == nil {
		return
	}
	r.mu.Lock()
	r.conns[sellerID] = conn
	r.mu.Unlock()
}

// Drop removes every entry pointing at conn. Dropping an unknown connection is a no-op.
func (r *Registry) Drop(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sellerID, c := range r.conns {
		if c == conn {
			delete(r.conns, sellerID)
		}
	}
}

// Lookup returns the connection registered for sellerID.
func (r *Registry) Lookup(sellerID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[sellerID]
	return conn, ok
}

// Len reports the number of connected sellers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll empties the registry and closes every connection that supports
// closing. Used on shutdown so open streams end.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]Conn)
	r.mu.Unlock()

	for _, conn := range conns {
		if closer, ok := conn.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}
