package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voyagelab/travel-backend/config"
)

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// CheckoutIdemStore records idempotency keys for checkout so that a retried
// request returns the already-created order instead of producing a second one.
type CheckoutIdemStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckoutIdemStore(client *redis.Client, ttl time.Duration) *CheckoutIdemStore {
	return &CheckoutIdemStore{client: client, ttl: ttl}
}

func (s *CheckoutIdemStore) key(k string) string {
	return "idem:checkout:" + k
}

// Get returns the order id recorded under key, or "" when the key is unseen.
func (s *CheckoutIdemStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *CheckoutIdemStore) Set(ctx context.Context, key, orderID string) error {
	return s.client.Set(ctx, s.key(key), orderID, s.ttl).Err()
}
