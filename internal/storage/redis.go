package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"letterforge/internal/config"
)

// RedisStore persists each slot as one Redis key. Slots have no expiration:
// the collections live until explicitly overwritten.
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore creates a Redis-backed slot store.
func NewRedisStore(cfg *config.Config) *RedisStore {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB

	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisStore{
		client: redis.NewClient(opts),
		config: cfg,
	}
}

// Read returns the raw content of the named slot.
func (s *RedisStore) Read(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.slotKey(slot)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	return data, nil
}

// Write replaces the content of the named slot.
func (s *RedisStore) Write(ctx context.Context, slot string, data []byte) error {
	if err := s.client.Set(ctx, s.slotKey(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	return nil
}

// IsHealthy checks the Redis connection.
func (s *RedisStore) IsHealthy(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) slotKey(slot string) string {
	return fmt.Sprintf("letterforge:collection:%s", slot)
}
