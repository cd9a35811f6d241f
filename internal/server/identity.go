package server

import (
	"sync"

	"github.com/google/uuid"
)

// IdentityStore maps player names to stable player ids so a player who
// reconnects under the same name keeps the same identity. It stands in for
// the auth service's session-scoped identity; the game core only depends on
// ids being opaque and stable.
type IdentityStore struct {
	byName map[string]string // name -> playerID
	mu     sync.Mutex
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		byName: make(map[string]string),
	}
}

// GetOrCreate returns the player id registered for name, minting one on
// first use.
func (s *IdentityStore) GetOrCreate(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, exists := s.byName[name]; exists {
		return id
	}
	id := uuid.New().String()
	s.byName[name] = id
	return id
}

// Lookup returns the id for name, if registered.
func (s *IdentityStore) Lookup(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, exists := s.byName[name]
	return id, exists
}

func (s *IdentityStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}
