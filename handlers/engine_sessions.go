package handlers

import (
	"sync"
	"time"

	"catalogquote/services"
)

const sessionIdleLimit = 12 * time.Hour

type sessionEntry struct {
	mu       sync.Mutex
	session  *services.EngineSession
	lastUsed time.Time
}

// SessionStore keeps one EngineSession per browser view. An engine session
// is single-threaded, so every access through With holds that session's
// lock.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		now:      time.Now,
	}
}

// With runs fn with the session for id, creating it on first use. Sessions
// idle for longer than the cookie lifetime are dropped.
func (s *SessionStore) With(id string, fn func(*services.EngineSession) error) error {
	s.mu.Lock()
	now := s.now()
	for key, entry := range s.sessions {
		if key != id && now.Sub(entry.lastUsed) > sessionIdleLimit {
			delete(s.sessions, key)
		}
	}
	entry, ok := s.sessions[id]
	if !ok {
		entry = &sessionEntry{session: services.NewEngineSession()}
		s.sessions[id] = entry
	}
	entry.lastUsed = now
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
