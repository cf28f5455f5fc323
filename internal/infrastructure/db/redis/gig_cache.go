package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

const gigCacheTTL = 5 * time.Minute

// GigCache is a read-through cache for gig documents.
// Key format: gig:<gig_id>
type GigCache struct {
	client *redis.Client
}

// NewGigCache creates a GigCache wrapping the given Redis client.
func NewGigCache(client *redis.Client) *GigCache {
	return &GigCache{client: client}
}

// Get returns the cached gig, or (nil, nil) on a cache miss.
func (c *GigCache) Get(ctx context.Context, gigID string) (*domain.Gig, error) {
	raw, err := c.client.Get(ctx, c.key(gigID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("gig cache get: %w", err)
	}

	var gig domain.Gig
	if err := json.Unmarshal(raw, &gig); err != nil {
		return nil, fmt.Errorf("gig cache decode: %w", err)
	}
	return &gig, nil
}

// Set stores the gig (expires after gigCacheTTL).
func (c *GigCache) Set(ctx context.Context, gig *domain.Gig) error {
	raw, err := json.Marshal(gig)
	if err != nil {
		return fmt.Errorf("gig cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(gig.ID), raw, gigCacheTTL).Err()
}

// Invalidate drops the cached gig after a write.
func (c *GigCache) Invalidate(ctx context.Context, gigID string) error {
	return c.client.Del(ctx, c.key(gigID)).Err()
}

func (c *GigCache) key(gigID string) string {
	return fmt.Sprintf("gig:%s", gigID)
}
