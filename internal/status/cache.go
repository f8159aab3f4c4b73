package status

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/config"
	"github.com/mstore-labs/pim-backend/pkg/logger"
	"github.com/mstore-labs/pim-backend/pkg/redis"
)

// reportStore is the slice of the redis client the cache needs.
type reportStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FlushPrefix(ctx context.Context, prefix string) (int64, error)
	StatusKey(productID string, updatedAtUnix int64) string
	StatusKeyPrefix(productID string) string
}

// Cache stores serialized reports in redis. The key embeds the product's
// updated_at timestamp, so any catalog write naturally misses the old
// entry and the TTL reaps it.
type Cache struct {
	store reportStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCache wires the redis-backed report cache. Returns nil when caching
// is disabled; the aggregator treats a nil cache as a no-op.
func NewCache(client *redis.Client, cfg config.StatusConfig, logg *logger.Logger) *Cache {
	if client == nil || !cfg.CacheEnabled {
		return nil
	}
	return &Cache{store: client, ttl: cfg.CacheTTL, logg: logg}
}

// Get returns the cached report for the product at this catalog version.
func (c *Cache) Get(ctx context.Context, productID uuid.UUID, updatedAt time.Time) (*Report, bool) {
	if c == nil {
		return nil, false
	}
	key := c.store.StatusKey(productID.String(), updatedAt.Unix())
	payload, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "status cache read failed")
		}
		return nil, false
	}
	var report Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "status cache entry corrupt")
		}
		return nil, false
	}
	return &report, true
}

// Set stores a report under the product's current catalog version. Cache
// write failures are logged, never surfaced.
func (c *Cache) Set(ctx context.Context, report *Report, updatedAt time.Time) {
	if c == nil || report == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		if c.logg != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "status report not serializable")
		}
		return
	}
	key := c.store.StatusKey(report.ProductID.String(), updatedAt.Unix())
	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil && c.logg != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "status cache write failed")
	}
}

// InvalidateProduct drops every cached version for one product.
func (c *Cache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	if c == nil {
		return nil
	}
	_, err := c.store.FlushPrefix(ctx, c.store.StatusKeyPrefix(productID.String()))
	return err
}
