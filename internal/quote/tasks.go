package quote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/shipquote/internal/pack"
	"github.com/noah-isme/shipquote/internal/quotecache"
)

// Task types processed by the worker.
const (
	TaskCartChanged        = "quote:cart_changed"
	TaskFlushCache         = "quote:flush_cache"
	TaskFlushCategoryCache = "quote:flush_category_cache"
)

// CartChangedPayload identifies the single cache entry made stale by a cart
// mutation. The key is computed at enqueue time so the worker does not need
// the full cart contents.
type CartChangedPayload struct {
	CacheKey string `json:"cacheKey"`
}

// FlushCategoryPayload names the category whose cached quotes must go.
type FlushCategoryPayload struct {
	CategoryID int64 `json:"categoryId"`
}

// NewCartChangedTask builds the invalidation task for a mutated cart.
func NewCartChangedTask(p pack.Package) (*asynq.Task, error) {
	key := quotecache.Key(p.Destination, quotecache.Fingerprint(p))
	payload, err := json.Marshal(CartChangedPayload{CacheKey: key})
	if err != nil {
		return nil, fmt.Errorf("marshal cart changed payload: %w", err)
	}
	return asynq.NewTask(TaskCartChanged, payload), nil
}

// NewFlushCacheTask builds the full cache flush task.
func NewFlushCacheTask() *asynq.Task {
	return asynq.NewTask(TaskFlushCache, nil)
}

// NewFlushCategoryTask builds the per-category flush task.
func NewFlushCategoryTask(categoryID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(FlushCategoryPayload{CategoryID: categoryID})
	if err != nil {
		return nil, fmt.Errorf("marshal flush category payload: %w", err)
	}
	return asynq.NewTask(TaskFlushCategoryCache, payload), nil
}

// Worker handles cache invalidation tasks.
type Worker struct {
	Cache  *quotecache.Cache
	Logger zerolog.Logger
}

// Register attaches the worker's handlers to the mux.
func (wk *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskCartChanged, wk.HandleCartChanged)
	mux.HandleFunc(TaskFlushCache, wk.HandleFlushCache)
	mux.HandleFunc(TaskFlushCategoryCache, wk.HandleFlushCategory)
}

// HandleCartChanged drops the cached quote for one cart/destination pair.
func (wk *Worker) HandleCartChanged(ctx context.Context, t *asynq.Task) error {
	var payload CartChangedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal cart changed payload: %w", err)
	}
	if payload.CacheKey == "" {
		return nil
	}
	if err := wk.Cache.Invalidate(ctx, payload.CacheKey); err != nil {
		return fmt.Errorf("invalidate quote %s: %w", payload.CacheKey, err)
	}
	wk.Logger.Debug().Str("key", payload.CacheKey).Msg("quote cache entry invalidated")
	return nil
}

// HandleFlushCache drops every cached quote.
func (wk *Worker) HandleFlushCache(ctx context.Context, _ *asynq.Task) error {
	if err := wk.Cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("flush quote cache: %w", err)
	}
	wk.Logger.Info().Msg("quote cache flushed")
	return nil
}

// HandleFlushCategory drops cached quotes that priced items in one category.
func (wk *Worker) HandleFlushCategory(ctx context.Context, t *asynq.Task) error {
	var payload FlushCategoryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal flush category payload: %w", err)
	}
	if err := wk.Cache.InvalidateCategory(ctx, payload.CategoryID); err != nil {
		return fmt.Errorf("flush category %d: %w", payload.CategoryID, err)
	}
	wk.Logger.Info().Int64("category_id", payload.CategoryID).Msg("category quote cache flushed")
	return nil
}
