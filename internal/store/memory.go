package store

import (
	"context"
	"sync"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
)

// MemoryStore keeps session attributes in process memory.
// Mappings are copied on the way in and out so callers never share state.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Attributes
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]models.Attributes),
	}
}

// GetAttributes retrieves the mapping for a session
func (s *MemoryStore) GetAttributes(ctx context.Context, sessionID string) (models.Attributes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return copyAttributes(attrs), nil
}

// SaveAttributes stores the mapping for a session
func (s *MemoryStore) SaveAttributes(ctx context.Context, sessionID string, attrs models.Attributes) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = copyAttributes(attrs)
	return nil
}

// DeleteAttributes removes a session
func (s *MemoryStore) DeleteAttributes(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are held
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// copyAttributes deep-copies the raw values too, unlike models.Attributes.Clone
func copyAttributes(attrs models.Attributes) models.Attributes {
	out := make(models.Attributes, len(attrs))
	for k, v := range attrs {
		out[k] = append([]byte(nil), v...)
	}
	return out
}
