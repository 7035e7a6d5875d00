package pageanalyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-videobrain-be/pkg/brain"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 6 * time.Hour

// Analyzer is the collaborator contract the cache wraps.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*brain.PageAnalysis, error)
}

// CachedAnalyzer decorates an Analyzer with a Redis cache keyed by URL, so a
// page referenced across several turns is fetched once. Cache failures fall
// through to the inner analyzer.
type CachedAnalyzer struct {
	inner  Analyzer
	rdb    *redis.Client
	logger *log.Logger
}

func NewCachedAnalyzer(inner Analyzer, rdb *redis.Client, logger *log.Logger) *CachedAnalyzer {
	return &CachedAnalyzer{
		inner:  inner,
		rdb:    rdb,
		logger: logger,
	}
}

func cacheKey(url string) string {
	return fmt.Sprintf("page_analysis:%s", url)
}

func (c *CachedAnalyzer) Analyze(ctx context.Context, url string) (*brain.PageAnalysis, error) {
	if c.rdb != nil {
		if raw, err := c.rdb.Get(ctx, cacheKey(url)).Result(); err == nil {
			var cached brain.PageAnalysis
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			c.logger.Printf("[PAGE] Corrupt cache entry for %s, refetching", url)
		}
	}

	analysis, err := c.inner.Analyze(ctx, url)
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if raw, err := json.Marshal(analysis); err == nil {
			if err := c.rdb.Set(ctx, cacheKey(url), raw, cacheTTL).Err(); err != nil {
				c.logger.Printf("[PAGE] Cache write failed for %s: %v", url, err)
			}
		}
	}
	return analysis, nil
}
