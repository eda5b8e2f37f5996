package bridge

import "sync"

// Registry holds the single currently-active plugin connection.
//
// The newest connection always wins: Set replaces whatever is there
// with no handshake. Clear is guarded — a disconnect notification for a
// connection that has already been replaced must not knock out its
// successor.
type Registry struct {
	mu      sync.Mutex
	current *Conn
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Set registers c as the active connection, replacing any previous one.
func (r *Registry) Set(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = c
}

// Clear removes c if it is still the active connection. A stale clear
// for an already-replaced connection is a no-op.
func (r *Registry) Clear(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == c {
		r.current = nil
	}
}

// Current returns the active connection, or nil when the plugin is
// disconnected. Callers must re-check at every use rather than caching
// the handle — it may be replaced or cleared between calls.
func (r *Registry) Current() *Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
