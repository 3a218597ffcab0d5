package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Heemps/Cape-Cod-Tides/internal/config"
	"github.com/Heemps/Cape-Cod-Tides/internal/models"
)

// LRUCacheEntry wraps the cached data with metadata
type LRUCacheEntry struct {
	Data      *models.TidePredictionRecord
	ExpiresAt time.Time
}

// CacheService layers an in-process LRU over an optional DynamoDB cache.
// A warm Lambda container answers from the LRU; DynamoDB carries records
// across containers when enabled.
type CacheService struct {
	lru          *lru.Cache[string, *LRUCacheEntry]
	dynamoCache  *DynamoPredictionCache
	ttl          time.Duration
	lruHits      uint64
	lruMisses    uint64
	dynamoHits   uint64
	dynamoMisses uint64
}

// NewCacheService creates the prediction cache per configuration. The
// DynamoDB layer is only constructed when enabled.
func NewCacheService(ctx context.Context, cacheConfig *config.CacheConfig) (*CacheService, error) {
	lruCache, err := lru.New[string, *LRUCacheEntry](cacheConfig.LRUSize)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	service := &CacheService{
		lru: lruCache,
		ttl: cacheConfig.GetLRUTTL(),
	}

	if cacheConfig.EnableDynamoCache {
		dynamoClient, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		service.dynamoCache = NewDynamoPredictionCache(dynamoClient, cacheConfig)
	}

	return service, nil
}

// getCacheKey generates a unique cache key for a station and date
func getCacheKey(stationID int, date string) string {
	return fmt.Sprintf("%d:%s", stationID, date)
}

// GetPredictions tries the LRU first, then DynamoDB. A miss everywhere
// returns nil without error.
func (c *CacheService) GetPredictions(ctx context.Context, stationID int, date string) (*models.TidePredictionRecord, error) {
	key := getCacheKey(stationID, date)
	if entry, ok := c.lru.Get(key); ok {
		if time.Now().Before(entry.ExpiresAt) {
			c.lruHits++
			return entry.Data, nil
		}
		// Entry expired, remove it
		c.lru.Remove(key)
	}
	c.lruMisses++

	if c.dynamoCache == nil {
		return nil, nil
	}

	record, err := c.dynamoCache.GetPredictions(ctx, stationID, date)
	if err != nil {
		return nil, fmt.Errorf("getting predictions from DynamoDB: %w", err)
	}

	if record != nil {
		c.dynamoHits++
		c.lru.Add(key, &LRUCacheEntry{
			Data:      record,
			ExpiresAt: time.Now().Add(c.ttl),
		})
		return record, nil
	}
	c.dynamoMisses++

	return nil, nil
}

// SavePredictions writes through to both layers.
func (c *CacheService) SavePredictions(ctx context.Context, record models.TidePredictionRecord) error {
	key := getCacheKey(record.StationID, record.Date)

	c.lru.Add(key, &LRUCacheEntry{
		Data:      &record,
		ExpiresAt: time.Now().Add(c.ttl),
	})

	if c.dynamoCache == nil {
		return nil
	}

	if err := c.dynamoCache.SavePredictions(ctx, record); err != nil {
		return fmt.Errorf("saving predictions to DynamoDB: %w", err)
	}

	return nil
}

// GetCacheStats returns statistics about cache hits and misses
func (c *CacheService) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"lru_hits":      c.lruHits,
		"lru_misses":    c.lruMisses,
		"dynamo_hits":   c.dynamoHits,
		"dynamo_misses": c.dynamoMisses,
	}
}

// Clear removes all entries from the LRU cache
func (c *CacheService) Clear() {
	c.lru.Purge()
}
