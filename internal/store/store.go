package store

import (
	"context"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
)

// Store persists the flat session-attribute mapping between invocations.
// Implementations can be swapped (memory, Redis, Cassandra) without touching
// the transport or the dispatcher.
type Store interface {
	// GetAttributes returns the mapping saved for a session
	GetAttributes(ctx context.Context, sessionID string) (models.Attributes, error)

	// SaveAttributes replaces the mapping saved for a session
	SaveAttributes(ctx context.Context, sessionID string, attrs models.Attributes) error

	// DeleteAttributes forgets a session; deleting an unknown session is not an error
	DeleteAttributes(ctx context.Context, sessionID string) error
}

// Errors
var (
	ErrSessionNotFound = &StoreError{Message: "session not found"}
	ErrEmptySessionID  = &StoreError{Message: "session id is required"}
)

// StoreError represents a storage error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
