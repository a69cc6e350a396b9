package quote

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipquote/internal/quotecache"
)

func taskCache(t *testing.T) (*quotecache.Cache, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &quotecache.Cache{R: client, Prefix: "sq:", TTL: time.Hour}, client
}

func TestHandleCartChangedInvalidatesEntry(t *testing.T) {
	t.Parallel()

	cache, client := taskCache(t)
	ctx := context.Background()
	p := testPackage()
	key := quotecache.Key(p.Destination, quotecache.Fingerprint(p))
	require.NoError(t, cache.Set(ctx, key, Quote{ID: "distance_rate:1"}, nil))

	task, err := NewCartChangedTask(p)
	require.NoError(t, err)

	wk := &Worker{Cache: cache, Logger: zerolog.Nop()}
	require.NoError(t, wk.HandleCartChanged(ctx, task))

	n, err := client.Exists(ctx, "sq:"+key).Result()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestHandleFlushCacheRemovesEverything(t *testing.T) {
	t.Parallel()

	cache, client := taskCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "quote:a", Quote{ID: "x"}, []int64{4}))
	require.NoError(t, cache.Set(ctx, "quote:b", Quote{ID: "y"}, nil))

	wk := &Worker{Cache: cache, Logger: zerolog.Nop()}
	require.NoError(t, wk.HandleFlushCache(ctx, NewFlushCacheTask()))

	keys, err := client.Keys(ctx, "sq:*").Result()
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestHandleFlushCategoryIsTargeted(t *testing.T) {
	t.Parallel()

	cache, client := taskCache(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "quote:books", Quote{ID: "b"}, []int64{4}))
	require.NoError(t, cache.Set(ctx, "quote:tools", Quote{ID: "t"}, []int64{9}))

	task, err := NewFlushCategoryTask(4)
	require.NoError(t, err)

	wk := &Worker{Cache: cache, Logger: zerolog.Nop()}
	require.NoError(t, wk.HandleFlushCategory(ctx, task))

	n, err := client.Exists(ctx, "sq:quote:books").Result()
	require.NoError(t, err)
	require.Zero(t, n)
	n, err = client.Exists(ctx, "sq:quote:tools").Result()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
