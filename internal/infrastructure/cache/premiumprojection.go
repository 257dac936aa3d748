package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

const premiumProjectionKeyPrefix = "kazihub:premium:"

// ErrProjectionMiss is returned when no projection is cached for the account.
var ErrProjectionMiss = errors.New("premium projection not cached")

// PremiumProjectionCache is the Redis-backed fast path for "is this account
// premium". It is only a projection: a miss or a Redis outage falls back to
// the evaluator, so reads and writes here never gate correctness.
type PremiumProjectionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewPremiumProjectionCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *PremiumProjectionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PremiumProjectionCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *PremiumProjectionCache) key(accountEmail string) string {
	return premiumProjectionKeyPrefix + accountEmail
}

// SetPremium records the premium answer for an account.
func (c *PremiumProjectionCache) SetPremium(ctx context.Context, accountEmail string, premium bool) error {
	value := "0"
	if premium {
		value = "1"
	}
	if err := c.client.Set(ctx, c.key(accountEmail), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set premium projection: %w", err)
	}
	return nil
}

// GetPremium returns the cached answer, or ErrProjectionMiss.
func (c *PremiumProjectionCache) GetPremium(ctx context.Context, accountEmail string) (bool, error) {
	value, err := c.client.Get(ctx, c.key(accountEmail)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, ErrProjectionMiss
		}
		return false, fmt.Errorf("failed to get premium projection: %w", err)
	}
	return value == "1", nil
}

// Invalidate drops the cached answer, forcing re-evaluation.
func (c *PremiumProjectionCache) Invalidate(ctx context.Context, accountEmail string) error {
	if err := c.client.Del(ctx, c.key(accountEmail)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate premium projection: %w", err)
	}
	c.logger.Debugw("premium projection invalidated", "account_email", accountEmail)
	return nil
}
