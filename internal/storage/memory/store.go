package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kakigori/storefront/internal/domain/model"
)

type entry struct {
	cfg       model.StoreConfig
	updatedAt time.Time
}

// Store keeps credentials in process memory. Contents are lost on restart.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string]entry), now: time.Now}
}

// Load returns the config for a session.
func (s *Store) Load(ctx context.Context, sessionID string) (model.StoreConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[sessionID].cfg, nil
}

// Save stores the config for a session.
func (s *Store) Save(ctx context.Context, sessionID string, cfg model.StoreConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = entry{cfg: cfg, updatedAt: s.now()}
	return nil
}

// Clear removes the config of a session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

// Purge drops entries written before cutoff.
func (s *Store) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, e := range s.entries {
		if e.updatedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}
