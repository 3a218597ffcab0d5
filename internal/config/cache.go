package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all prediction-cache configuration
type CacheConfig struct {
	// LRU cache settings
	LRUSize       int
	LRUTTLMinutes int

	// DynamoDB cache settings
	DynamoTableName string
	DynamoTTLDays   int

	// General settings
	EnableLRUCache    bool
	EnableDynamoCache bool
}

const (
	defaultLRUSize         = 256
	defaultLRUTTLMinutes   = 15
	defaultDynamoTTLDays   = 2
	defaultDynamoTableName = "tide-predictions-cache"
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		LRUSize:           getEnvInt("CACHE_TIDE_LRU_SIZE", defaultLRUSize),
		LRUTTLMinutes:     getEnvInt("CACHE_TIDE_LRU_TTL_MINUTES", defaultLRUTTLMinutes),
		DynamoTableName:   getEnvOrDefault("CACHE_DYNAMO_TABLE", defaultDynamoTableName),
		DynamoTTLDays:     getEnvInt("CACHE_DYNAMO_TTL_DAYS", defaultDynamoTTLDays),
		EnableLRUCache:    getEnvBool("CACHE_ENABLE_LRU", true),
		EnableDynamoCache: getEnvBool("CACHE_ENABLE_DYNAMO", false),
	}

	log.Debug().
		Int("LRUSize", config.LRUSize).
		Int("LRUTTLMinutes", config.LRUTTLMinutes).
		Str("DynamoTableName", config.DynamoTableName).
		Int("DynamoTTLDays", config.DynamoTTLDays).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Msg("Cache configuration loaded")

	return config
}

func (c *CacheConfig) GetLRUTTL() time.Duration {
	return time.Duration(c.LRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetDynamoTTL() time.Duration {
	return time.Duration(c.DynamoTTLDays) * 24 * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
