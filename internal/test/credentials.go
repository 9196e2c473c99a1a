package test

import (
	"context"
	"sync"

	"github.com/kakigori/storefront/internal/domain/model"
)

// CredentialStoreStub keeps store configs in memory. Err fields force failures.
type CredentialStoreStub struct {
	mu       sync.Mutex
	Configs  map[string]model.StoreConfig
	LoadErr  error
	SaveErr  error
	ClearErr error
}

// NewCredentialStoreStub constructs an empty stub.
func NewCredentialStoreStub() *CredentialStoreStub {
	return &CredentialStoreStub{Configs: make(map[string]model.StoreConfig)}
}

// Load returns the config stored for a session.
func (s *CredentialStoreStub) Load(ctx context.Context, sessionID string) (model.StoreConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return model.StoreConfig{}, s.LoadErr
	}
	return s.Configs[sessionID], nil
}

// Save stores the config for a session.
func (s *CredentialStoreStub) Save(ctx context.Context, sessionID string, cfg model.StoreConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if s.Configs == nil {
		s.Configs = make(map[string]model.StoreConfig)
	}
	s.Configs[sessionID] = cfg
	return nil
}

// Clear removes the config of a session.
func (s *CredentialStoreStub) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	delete(s.Configs, sessionID)
	return nil
}
