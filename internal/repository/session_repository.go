package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/models"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

// SessionRepository reads the session blobs the login service stores in Redis.
type SessionRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewSessionRepository constructs a session repository. Keys are prefix + session ID.
func NewSessionRepository(client *redis.Client, prefix string, logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{client: client, prefix: prefix, logger: logger}
}

// Get loads and unmarshals the session blob for id.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.SessionBlob, error) {
	if r.client == nil || id == "" {
		return nil, appErrors.ErrSessionNotFound
	}

	key := r.prefix + id
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var blob models.SessionBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", key, err)
	}
	return &blob, nil
}

// Delete removes the session blob; used on logout.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil || id == "" {
		return nil
	}
	key := r.prefix + id
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *SessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Ping checks that the session store is reachable.
func (r *SessionRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("session store not configured")
	}
	return r.client.Ping(ctx).Err()
}
