package quotecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoises computed quotes in Redis, keyed by the destination and cart
// fingerprint. Entries are idempotent recomputations of their key, so there
// is no single-flight: concurrent misses may both compute and both write,
// and the last writer wins. A nil Cache or nil client disables caching; all
// reads miss and writes are dropped.
type Cache struct {
	R      *redis.Client
	Prefix string
	TTL    time.Duration
}

// Get unmarshals a cached quote into dst and reports whether the key existed.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.R == nil || key == "" {
		return false, nil
	}
	data, err := c.R.Get(ctx, c.Prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the quote under key with the configured TTL and registers the
// key in the index set of every category id, enabling targeted invalidation
// when a category's rules change.
func (c *Cache) Set(ctx context.Context, key string, v any, categoryIDs []int64) error {
	if c == nil || c.R == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	pipe := c.R.TxPipeline()
	pipe.Set(ctx, c.Prefix+key, data, c.TTL)
	for _, id := range categoryIDs {
		idx := c.categoryIndex(id)
		pipe.SAdd(ctx, idx, c.Prefix+key)
		pipe.Expire(ctx, idx, c.TTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate drops a single cached quote.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if c == nil || c.R == nil || key == "" {
		return nil
	}
	return c.R.Del(ctx, c.Prefix+key).Err()
}

// InvalidateAll removes every cached quote and category index under the
// prefix. Used by the administrative clear-cache action.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	if c == nil || c.R == nil {
		return nil
	}
	iter := c.R.Scan(ctx, 0, c.Prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 500 {
			if err := c.R.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.R.Del(ctx, keys...).Err()
	}
	return nil
}

// InvalidateCategory drops every quote whose winning rule was scoped to the
// given product category.
func (c *Cache) InvalidateCategory(ctx context.Context, categoryID int64) error {
	if c == nil || c.R == nil {
		return nil
	}
	idx := c.categoryIndex(categoryID)
	keys, err := c.R.SMembers(ctx, idx).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := c.R.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return c.R.Del(ctx, idx).Err()
}

func (c *Cache) categoryIndex(categoryID int64) string {
	return fmt.Sprintf("%scategory:%d", c.Prefix, categoryID)
}
