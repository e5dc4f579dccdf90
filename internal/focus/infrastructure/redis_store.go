package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/optiflow/internal/focus/domain"
)

// DefaultSessionTTL bounds how long an untouched session survives in Redis.
const DefaultSessionTTL = 24 * time.Hour

// RedisSessionStore stores sessions as JSON values.
// Keys are namespaced: optiflow:focus:session:{id}
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a store on client. A ttl of 0 keeps sessions forever.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

// SessionKey returns the Redis key of a session.
func SessionKey(id string) string {
	return fmt.Sprintf("optiflow:focus:session:%s", id)
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load focus session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode focus session %s: %w", id, err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode focus session: %w", err)
	}
	if err := s.client.Set(ctx, SessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save focus session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, SessionKey(id)).Err()
}

// Ping checks the Redis connection.
func (s *RedisSessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
