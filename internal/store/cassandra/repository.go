package cassandra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/store"
	"github.com/distrubuted-game-mechanic/hello-buttons/pkg/logger"
)

// Repository implements store.Store using Cassandra
type Repository struct {
	client  *Client
	logger  *logger.Logger
	timeout time.Duration
	ttl     time.Duration
}

var _ store.Store = (*Repository)(nil)

// NewRepository creates a Cassandra-backed attribute store.
// Rows are written with ttl (0 = no expiration) and every save refreshes it.
func NewRepository(client *Client, log *logger.Logger, timeout, ttl time.Duration) *Repository {
	return &Repository{
		client:  client,
		logger:  log,
		timeout: timeout,
		ttl:     ttl,
	}
}

// GetAttributes retrieves a session's mapping
func (r *Repository) GetAttributes(ctx context.Context, sessionID string) (models.Attributes, error) {
	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	var raw string
	err = r.client.Session().Query(selectQuery(r.client.Keyspace()), sessionID).WithContext(queryCtx).Scan(&raw)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, store.ErrSessionNotFound
		}
		r.logger.Error("Failed to get session attributes from Cassandra",
			logger.F("session_id", sessionID),
			logger.Err(err))
		return nil, fmt.Errorf("failed to get session attributes: %w", err)
	}

	return decodeAttributes(raw)
}

// SaveAttributes upserts a session's mapping
func (r *Repository) SaveAttributes(ctx context.Context, sessionID string, attrs models.Attributes) error {
	if sessionID == "" {
		return store.ErrEmptySessionID
	}

	raw, err := encodeAttributes(attrs)
	if err != nil {
		return err
	}

	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	err = r.client.Session().Query(insertQuery(r.client.Keyspace()),
		sessionID,
		raw,
		time.Now().UTC(),
		ttlSeconds(r.ttl),
	).WithContext(queryCtx).Exec()
	if err != nil {
		r.logger.Error("Failed to save session attributes in Cassandra",
			logger.F("session_id", sessionID),
			logger.Err(err))
		return fmt.Errorf("failed to save session attributes: %w", err)
	}

	r.logger.Debug("Session attributes saved", logger.F("session_id", sessionID))
	return nil
}

// DeleteAttributes removes a session's row
func (r *Repository) DeleteAttributes(ctx context.Context, sessionID string) error {
	queryCtx, cancel, err := r.queryContext(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if err := r.client.Session().Query(deleteQuery(r.client.Keyspace()), sessionID).WithContext(queryCtx).Exec(); err != nil {
		r.logger.Error("Failed to delete session attributes from Cassandra",
			logger.F("session_id", sessionID),
			logger.Err(err))
		return fmt.Errorf("failed to delete session attributes: %w", err)
	}
	return nil
}

// queryContext applies the configured timeout unless ctx already has a
// deadline, and refuses to start a query on a cancelled context.
func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	queryCtx, cancel := ctx, context.CancelFunc(func() {})
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && r.timeout > 0 {
		queryCtx, cancel = context.WithTimeout(ctx, r.timeout)
	}

	select {
	case <-queryCtx.Done():
		cancel()
		return nil, nil, fmt.Errorf("context cancelled: %w", queryCtx.Err())
	default:
	}
	return queryCtx, cancel, nil
}

func selectQuery(keyspace string) string {
	return fmt.Sprintf(`
		SELECT attributes
		FROM %s.session_attributes
		WHERE session_id = ?`, keyspace)
}

func insertQuery(keyspace string) string {
	return fmt.Sprintf(`
		INSERT INTO %s.session_attributes (session_id, attributes, updated_at)
		VALUES (?, ?, ?)
		USING TTL ?`, keyspace)
}

func deleteQuery(keyspace string) string {
	return fmt.Sprintf(`
		DELETE FROM %s.session_attributes
		WHERE session_id = ?`, keyspace)
}

// ttlSeconds converts ttl for USING TTL, where 0 means no expiration
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	s := int(ttl / time.Second)
	if s == 0 {
		s = 1
	}
	return s
}

func encodeAttributes(attrs models.Attributes) (string, error) {
	if attrs == nil {
		attrs = models.Attributes{}
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session attributes: %w", err)
	}
	return string(b), nil
}

func decodeAttributes(raw string) (models.Attributes, error) {
	attrs := models.Attributes{}
	if raw == "" {
		return attrs, nil
	}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session attributes: %w", err)
	}
	return attrs, nil
}
