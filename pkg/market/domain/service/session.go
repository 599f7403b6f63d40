package service

import "sync"

// sessionLocks serializes read-modify-write cycles on one shopper's session.
type sessionLocks struct {
	mu       sync.Mutex
	sessions map[string]*sessionLock
}

// sessionLock is dropped from the map once no request holds or waits for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{sessions: make(map[string]*sessionLock)}
}

func (s *sessionLocks) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.sessions[sessionID]
	if !ok {
		l = &sessionLock{}
		s.sessions[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.sessions, sessionID)
		}
		s.mu.Unlock()
	}
}
