package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sacredgreeks/models"

	"github.com/go-redis/redis/v8"
)

// ContextTTL is how long the last guided-prayer exchange is remembered.
const ContextTTL = 30 * time.Minute

func contextKey(userID string) string {
	return "ai:prayer:" + userID
}

// RedisContextStore keeps one user's last prompt and reply between requests.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	if ttl <= 0 {
		ttl = ContextTTL
	}
	return &RedisContextStore{client: client, ttl: ttl}
}

// Get returns an empty context when nothing is stored or the entry is unreadable.
func (s *RedisContextStore) Get(ctx context.Context, userID string) (*models.AIContext, error) {
	raw, err := s.client.Get(ctx, contextKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.AIContext{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prayer context: %w", err)
	}
	var saved models.AIContext
	if err := json.Unmarshal(raw, &saved); err != nil {
		return &models.AIContext{}, nil
	}
	return &saved, nil
}

// Set overwrites the stored exchange and restarts its TTL.
func (s *RedisContextStore) Set(ctx context.Context, userID string, aiCtx *models.AIContext) error {
	b, err := json.Marshal(aiCtx)
	if err != nil {
		return fmt.Errorf("encode prayer context: %w", err)
	}
	if err := s.client.Set(ctx, contextKey(userID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("save prayer context: %w", err)
	}
	return nil
}

func (s *RedisContextStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, contextKey(userID)).Err()
}
