package session

import "sync"

// MemoryStore is a thread-safe in-memory Store. Sessions are lost when the
// process exits; it backs tests and ephemeral (--no-persist) CLI runs.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.current
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	if out.AccessToken == "" {
		// Invariant: no profile without an access token.
		out.User = nil
	}
	return out
}

func (s *MemoryStore) Write(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.AccessToken != nil {
		s.current.AccessToken = *u.AccessToken
	}
	if u.RefreshToken != nil {
		s.current.RefreshToken = *u.RefreshToken
	}
	if u.User != nil {
		profile := *u.User
		s.current.User = &profile
	}
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()
}
