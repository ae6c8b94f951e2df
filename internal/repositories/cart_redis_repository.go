package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"teslo/internal/cart"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// RedisCartRepository keeps cart snapshots as JSON documents in Redis, refreshed on every save.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository creates a RedisCartRepository. A zero ttl keeps carts forever.
func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

// Load returns the snapshot stored for userID, or nil when there is none.
func (r *RedisCartRepository) Load(ctx context.Context, userID string) (*cart.Snapshot, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart of user %s: %w", userID, err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode cart of user %s: %w", userID, err)
	}
	return &snap, nil
}

// Save writes the snapshot for userID.
func (r *RedisCartRepository) Save(ctx context.Context, userID string, snap cart.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart of user %s: %w", userID, err)
	}
	if err := r.client.Set(ctx, cartKeyPrefix+userID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart of user %s: %w", userID, err)
	}
	return nil
}

// Delete drops the snapshot of userID.
func (r *RedisCartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart of user %s: %w", userID, err)
	}
	return nil
}
