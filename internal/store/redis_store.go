package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
)

// RedisOptions configures a RedisStore
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0 = no expiration
}

// RedisStore implements Store using Redis.
// Each session's mapping is stored as one JSON blob with a TTL for automatic
// cleanup; every save refreshes the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    opts.TTL,
	}, nil
}

// GetAttributes retrieves a session's mapping from Redis.
func (s *RedisStore) GetAttributes(ctx context.Context, sessionID string) (models.Attributes, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session attributes: %w", err)
	}

	var attrs models.Attributes
	if err := json.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session attributes: %w", err)
	}
	if attrs == nil {
		attrs = models.Attributes{}
	}

	return attrs, nil
}

// SaveAttributes writes a session's mapping to Redis.
func (s *RedisStore) SaveAttributes(ctx context.Context, sessionID string, attrs models.Attributes) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if attrs == nil {
		attrs = models.Attributes{}
	}

	data, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("failed to marshal session attributes: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session attributes: %w", err)
	}

	return nil
}

// DeleteAttributes deletes a session from Redis.
func (s *RedisStore) DeleteAttributes(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session attributes: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// sessionKey generates a Redis key for a session.
func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
