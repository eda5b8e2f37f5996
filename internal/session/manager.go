// Package session multiplexes the MCP endpoint across independent
// protocol sessions. Each remote caller gets its own session id and its
// own MCP server instance (tool registry), all bound to the same
// underlying application bridge.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
)

// Session is one remote caller's logical conversation.
type Session struct {
	ID      string
	Server  *server.MCPServer
	Created time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

// LastUsed reports when the session last handled a request.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Manager owns the session table. Sessions are created on first contact
// (a request with no session id), looked up by id afterwards, and
// removed on explicit termination or an idle sweep.
type Manager struct {
	newRegistry func() *server.MCPServer
	log         *slog.Logger
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager. newRegistry is called once per new
// session to build that session's tool registry.
func NewManager(newRegistry func() *server.MCPServer, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		newRegistry: newRegistry,
		log:         log,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// Open allocates a new session with a freshly generated id.
func (m *Manager) Open() *Session {
	now := m.now()
	s := &Session{
		ID:       uuid.NewString(),
		Server:   m.newRegistry(),
		Created:  now,
		lastUsed: now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	m.log.Info("mcp session opened", "session", s.ID)
	return s
}

// Get looks up a session and marks it used. Returns nil when the id is
// unknown (never created, or already terminated).
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	s := m.sessions[id]
	m.mu.RUnlock()
	if s != nil {
		s.touch(m.now())
	}
	return s
}

// Terminate removes a session. Reports whether it existed. Once
// terminated an id never comes back — later requests with it fail.
func (m *Manager) Terminate(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.log.Info("mcp session closed", "session", id)
	}
	return ok
}

// SweepIdle evicts sessions unused for longer than maxIdle and returns
// how many were removed. maxIdle <= 0 disables sweeping.
func (m *Manager) SweepIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	var evicted []string
	for id, s := range m.sessions {
		if s.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	m.mu.Unlock()

	for _, id := range evicted {
		m.log.Info("mcp session evicted (idle)", "session", id)
	}
	return len(evicted)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
