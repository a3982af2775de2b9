package db

import (
	"fmt"
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Cache keys are tracked per entity type so all caches of one type can be
// cleared when any write touches that entity.
var (
	Cache            *ristretto.Cache
	SummaryCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	FeedCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// Budget summary cache, keyed by user.

func SummaryCacheKey(userID int64) string {
	return fmt.Sprintf("budget_summary:%d", userID)
}

func SetSummaryCache(cacheKey string, value interface{}) {
	SummaryCacheKeys.Lock()
	SummaryCacheKeys.m[cacheKey] = struct{}{}
	SummaryCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func DelSummaryCache(userID int64) {
	cacheKey := SummaryCacheKey(userID)
	SummaryCacheKeys.Lock()
	delete(SummaryCacheKeys.m, cacheKey)
	SummaryCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

func ClearAllSummaryCaches() {
	SummaryCacheKeys.Lock()
	for key := range SummaryCacheKeys.m {
		Cache.Del(key)
	}
	SummaryCacheKeys.m = make(map[string]struct{})
	SummaryCacheKeys.Unlock()
}

// Post feed cache. The feed is global, so any post/comment/like write
// invalidates every feed key.

func SetFeedCache(cacheKey string, value interface{}) {
	FeedCacheKeys.Lock()
	FeedCacheKeys.m[cacheKey] = struct{}{}
	FeedCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func ClearAllFeedCaches() {
	FeedCacheKeys.Lock()
	for key := range FeedCacheKeys.m {
		Cache.Del(key)
	}
	FeedCacheKeys.m = make(map[string]struct{})
	FeedCacheKeys.Unlock()
}
