package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"rv32emu/engine"
)

// Session pairs one engine with the bookkeeping the API needs around it:
// a cycle budget, a creation timestamp, and the mutex that serializes
// concurrent HTTP requests against it. The engine itself is single
// threaded and synchronous (spec.md §5), so the mutex only keeps two
// requests from ticking the same session at once — it does not protect
// against anything the engine does internally.
type Session struct {
	ID        string
	CreatedAt time.Time
	MaxCycles uint64

	mu     sync.Mutex
	engine *engine.Engine
	cycles uint64
}

// Engine returns the session's underlying engine. Callers must hold no
// assumption of exclusivity; use WithLock for anything that reads and
// then mutates state.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// WithLock runs fn with the session locked, the only safe way to step or
// inspect a session from a handler.
func (s *Session) WithLock(fn func(e *engine.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Cycles reports how many ticks this session has executed.
func (s *Session) Cycles() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycles
}

// SessionManager owns every live session behind a single map mutex (cf.
// teacher api/session_manager.go), plus the broadcaster new sessions
// publish events to.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	broadcaster *Broadcaster
}

// NewSessionManager returns an empty manager wired to broadcaster.
func NewSessionManager(broadcaster *Broadcaster) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: broadcaster,
	}
}

// CreateSession allocates a fresh engine and registers it under a new
// random ID.
func (m *SessionManager) CreateSession(maxCycles uint64) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		MaxCycles: maxCycles,
		engine:    engine.New(),
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	return sess, nil
}

// GetSession looks up a session by ID.
func (m *SessionManager) GetSession(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// DestroySession removes a session. Returns false if it did not exist.
func (m *SessionManager) DestroySession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// ListSessions returns a snapshot of every live session's info.
func (m *SessionManager) ListSessions() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]SessionInfo, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sess.mu.Lock()
		out = append(out, SessionInfo{
			SessionID: sess.ID,
			CreatedAt: sess.CreatedAt,
			Status:    sess.engine.Status().String(),
			PCWord:    sess.engine.PC,
			Cycles:    sess.cycles,
		})
		sess.mu.Unlock()
	}
	return out
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Broadcaster returns the manager's event broadcaster.
func (m *SessionManager) Broadcaster() *Broadcaster {
	return m.broadcaster
}

// generateSessionID returns a random 16-byte hex session identifier.
func generateSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
