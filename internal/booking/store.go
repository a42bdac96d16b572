package booking

import (
	"sync"
	"time"
)

// Store keeps in-progress drafts keyed by ID.
type Store struct {
	drafts  map[string]*Draft
	mu      sync.RWMutex
	timeout time.Duration
}

// NewStore creates a store; drafts idle longer than timeout are discarded.
func NewStore(timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &Store{
		drafts:  make(map[string]*Draft),
		timeout: timeout,
	}
}

// Create starts a new draft and registers it.
func (s *Store) Create() *Draft {
	d := NewDraft()
	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return d
}

// Get returns the draft or nil when unknown or expired.
func (s *Store) Get(id string) *Draft {
	s.mu.RLock()
	d := s.drafts[id]
	s.mu.RUnlock()

	if d == nil {
		return nil
	}
	if d.IsExpired(s.timeout) {
		s.Delete(id)
		return nil
	}
	return d
}

// Delete removes a draft.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}

// CleanupExpired drops idle drafts and returns how many were removed.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, d := range s.drafts {
		if d.IsExpired(s.timeout) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}
