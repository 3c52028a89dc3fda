package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/globaltours/invoice-api/internal/application/invoicing"
	"github.com/globaltours/invoice-api/pkg/config"
)

var _ invoicing.DraftStore = (*DraftStore)(nil)

// DraftStore keeps form drafts in Redis. Values are opaque JSON blobs; keys
// are owned by the caller. No TTL: a draft lives until cleared or overwritten,
// like the browser-local slot it replaces.
type DraftStore struct {
	client *redis.Client
}

// New connects and pings the Redis backend.
func New(ctx context.Context, cfg config.RedisConfig) (*DraftStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &DraftStore{client: client}, nil
}

// Save overwrites the slot.
func (s *DraftStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Load returns the stored blob, (nil, nil) when the slot is empty.
func (s *DraftStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return data, nil
}

// Clear empties the slot. Clearing an empty slot is not an error.
func (s *DraftStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *DraftStore) Close() error {
	return s.client.Close()
}
