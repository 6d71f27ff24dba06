package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("session: missing user_id")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session: ttl must be positive")
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	s := &Session{
		SessionID: id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("session: failed to marshal: %w", err)
	}

	// Single SET with TTL: either the session exists fully or not at
	// all, even if the caller aborts mid-flight.
	if err := r.client.Set(ctx, r.key(id), data, ttl).Err(); err != nil {
		return nil, fmt.Errorf("session: failed to persist: %w", err)
	}

	return s, nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, fmt.Errorf("session: failed to load: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	// Redis expires the key on its own, but an expired record that is
	// still present must read as nonexistent.
	if s.IsExpired() {
		return nil, nil
	}

	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
