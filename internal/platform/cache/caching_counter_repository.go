// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"counter_backend/internal/feature/counter/domain/entity"
	"counter_backend/internal/feature/counter/usecase"
)

// CachingCounterRepository decorates a CounterRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads of today's counter are served
// from cache when possible; every write invalidates the affected entry.
type CachingCounterRepository struct {
	inner     usecase.CounterRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingCounterRepositoryがCounterRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CounterRepository = (*CachingCounterRepository)(nil)

// NewCachingCounterRepository decorates a CounterRepository with Redis caching.
// If ttl is 0, it defaults to the time remaining until the next UTC midnight
// (counter rows are per-day, so entries must not outlive the day boundary).
// If namespace is empty, it uses "counters".
func NewCachingCounterRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CounterRepository, namespace string) *CachingCounterRepository {
	if ttl <= 0 {
		ttl = TimeUntilNextUTCMidnight()
	}
	if namespace == "" {
		namespace = "counters"
	}
	return &CachingCounterRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindOrCreate retrieves a counter, checking cache first then falling back to
// the database. Only database reads populate the cache, so a cache hit always
// implies the row already exists.
func (c *CachingCounterRepository) FindOrCreate(ctx context.Context, userID uint, date string) (*entity.Counter, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindOrCreate(ctx, userID, date)
	}

	key := c.cacheKey(userID, date)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Counter
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindOrCreate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// IncrementAndGet advances the counter and invalidates its cache entry.
func (c *CachingCounterRepository) IncrementAndGet(ctx context.Context, userID uint, date string) (uint, error) {
	count, err := c.inner.IncrementAndGet(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.cacheKey(userID, date)).Err() // Best effort: don't fail if cache deletion fails
	}
	return count, nil
}

// ResetIfExists zeroes the counter and invalidates its cache entry.
func (c *CachingCounterRepository) ResetIfExists(ctx context.Context, userID uint, date string) error {
	if err := c.inner.ResetIfExists(ctx, userID, date); err != nil {
		return err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.cacheKey(userID, date)).Err() // Best effort
	}
	return nil
}

// cacheKey generates the cache key for a (user, day) counter.
func (c *CachingCounterRepository) cacheKey(userID uint, date string) string {
	return fmt.Sprintf("%s:%d:%s", c.namespace, userID, date)
}
