package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

const defaultKeyPrefix = "fluency:session:"

// RedisStore keeps session state as JSON values, refreshing the TTL on every save.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (fluency.SessionState, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return fluency.SessionState{}, ErrNotFound
	}
	if err != nil {
		return fluency.SessionState{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var state fluency.SessionState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return fluency.SessionState{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, state fluency.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
