// Package cache memoizes ranked results in Redis. Entries are TTL-bound
// and keyed by corpus, normalized query, and limit; concurrent misses for
// the same key are collapsed with singleflight so the ranking runs once.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/relevanced/relevanced/internal/relevance/ranker"
	"github.com/relevanced/relevanced/pkg/config"
	pkgredis "github.com/relevanced/relevanced/pkg/redis"
)

const keyPrefix = "rank:"

// RankCache caches rank results per (corpus, query, limit).
type RankCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a RankCache on top of an established Redis client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *RankCache {
	return &RankCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "rank-cache"),
	}
}

// Get returns the cached results for the key, if present.
func (c *RankCache) Get(ctx context.Context, corpusID, query string, limit int) ([]ranker.Result, bool) {
	key := c.buildKey(corpusID, query, limit)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var results []ranker.Result
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	c.logger.Debug("cache hit", "corpus_id", corpusID, "query", query, "key", key)
	return results, true
}

// Set stores results under the key with the configured TTL.
func (c *RankCache) Set(ctx context.Context, corpusID, query string, limit int, results []ranker.Result) {
	key := c.buildKey(corpusID, query, limit)
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns cached results when available; otherwise it runs
// computeFn exactly once per key across concurrent callers and caches the
// outcome. The bool reports whether the result came from cache.
func (c *RankCache) GetOrCompute(
	ctx context.Context,
	corpusID, query string,
	limit int,
	computeFn func() ([]ranker.Result, error),
) ([]ranker.Result, bool, error) {
	if results, ok := c.Get(ctx, corpusID, query, limit); ok {
		return results, true, nil
	}
	key := c.buildKey(corpusID, query, limit)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if results, ok := c.Get(ctx, corpusID, query, limit); ok {
			return results, nil
		}
		results, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, corpusID, query, limit, results)
		return results, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]ranker.Result), false, nil
}

// InvalidateCorpus removes every cached result for one corpus. Used when
// the corpus is deleted.
func (c *RankCache) InvalidateCorpus(ctx context.Context, corpusID string) error {
	pattern := keyPrefix + corpusHash(corpusID) + ":*"
	deleted, err := c.client.FlushByPattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("invalidating corpus %s: %w", corpusID, err)
	}
	c.logger.Info("corpus cache invalidated", "corpus_id", corpusID, "keys_deleted", deleted)
	return nil
}

// Invalidate removes every cached rank result.
func (c *RankCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns cumulative hit and miss counts.
func (c *RankCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// buildKey hashes corpus, normalized query, and limit into a fixed-width
// key. The corpus hash is a separate segment so per-corpus invalidation
// can match on a prefix.
func (c *RankCache) buildKey(corpusID, query string, limit int) string {
	raw := fmt.Sprintf("%s:limit=%d", normalizeQuery(query), limit)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%s:%x", keyPrefix, corpusHash(corpusID), hash[:16])
}

func corpusHash(corpusID string) string {
	hash := sha256.Sum256([]byte(corpusID))
	return fmt.Sprintf("%x", hash[:8])
}

// normalizeQuery lower-cases, collapses whitespace, and sorts the query
// terms. Ranking is a bag-of-words computation, so reordered queries are
// equivalent and can share a cache entry.
func normalizeQuery(query string) string {
	terms := strings.Fields(strings.ToLower(query))
	sort.Strings(terms)
	return strings.Join(terms, " ")
}
