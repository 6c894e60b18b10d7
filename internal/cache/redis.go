// Package cache keeps a short-lived Redis projection of user records,
// keyed by wallet address, for the wallet lookup endpoint.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the Redis client shared by the user cache methods.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at redisURL and verifies the connection.
// Pool sizing comes from configuration.
func New(ctx context.Context, redisURL string, poolSize, minIdleConns int) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = poolSize
	opt.MinIdleConns = minIdleConns

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
