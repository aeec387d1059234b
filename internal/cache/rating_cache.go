package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingCache keeps computed title ratings in Redis so list endpoints do
// not re-aggregate review scores on every request. All methods are
// no-ops when the cache was constructed without a Redis address.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache connects to Redis at addr. An empty addr yields a
// disabled cache, which every method treats as a permanent miss.
func NewRatingCache(addr, password string, ttl time.Duration) (*RatingCache, error) {
	if addr == "" {
		return &RatingCache{ttl: ttl}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RatingCache{client: rdb, ttl: ttl}, nil
}

func (c *RatingCache) key(titleID int64) string {
	return fmt.Sprintf("rating:title:%d", titleID)
}

// Get returns the cached rating and whether it was present.
func (c *RatingCache) Get(ctx context.Context, titleID int64) (float64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}

	val, err := c.client.Get(ctx, c.key(titleID)).Result()
	if err != nil {
		// redis.Nil and transport errors both degrade to a miss
		return 0, false
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}

// Set stores the rating with the configured TTL.
func (c *RatingCache) Set(ctx context.Context, titleID int64, rating float64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, c.key(titleID), strconv.FormatFloat(rating, 'f', -1, 64), c.ttl)
}

// Invalidate drops the cached rating after a review mutation.
func (c *RatingCache) Invalidate(ctx context.Context, titleID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, c.key(titleID))
}

// Close releases the underlying Redis connection.
func (c *RatingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
