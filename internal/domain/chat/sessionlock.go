package chat

import "sync"

// sessionLocks hands out one mutex per session id so concurrent exchanges on
// the same session serialize their read-complete-append cycle while distinct
// sessions proceed in parallel. Entries are never evicted; the map grows with
// the number of live session ids, which the registry keeps bounded.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for sessionID and returns its unlock func.
func (s *sessionLocks) Lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
