package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stxtips/stxtips/internal/model"
)

// Cache key prefix and TTL for user lookups.
const (
	userKeyPrefix = "user:wallet:"

	// DefaultUserTTL is the TTL for cached user data. Short, because a
	// verification can flip the flag at any time on another instance.
	DefaultUserTTL = 5 * time.Minute
)

// ErrCacheMiss is returned when a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetUser retrieves a user from cache by wallet address.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, wallet string) (*model.CachedUser, error) {
	key := userKey(wallet)

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedUser{
		Email:      result["email"],
		Wallet:     result["wallet"],
		IsVerified: result["is_verified"],
		UpdatedAt:  result["updated_at"],
	}

	return cached, nil
}

// SetUser stores a user in cache keyed by wallet address.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	key := userKey(user.Wallet)
	cached := user.ToCachedUser()

	fields := map[string]any{
		"email":       cached.Email,
		"wallet":      cached.Wallet,
		"is_verified": cached.IsVerified,
		"updated_at":  cached.UpdatedAt,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, DefaultUserTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}

	return nil
}

// InvalidateUser removes a cached user entry.
// Called after a verification mutates the record.
func (c *Cache) InvalidateUser(ctx context.Context, wallet string) error {
	if err := c.client.Del(ctx, userKey(wallet)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func userKey(wallet string) string {
	return userKeyPrefix + wallet
}
