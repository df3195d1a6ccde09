// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"smartsched/config"

	"github.com/go-redis/redis/v8"
)

// TokenCacheClient is the dedicated client for OAuth token persistence.
var TokenCacheClient *redis.Client

// InitTokenCache initializes the Redis client used for OAuth token persistence.
func InitTokenCache() {
	TokenCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTokenDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := TokenCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Token Cache): %v", err)
	}
}

// GetTokenCacheClient returns the Redis client for OAuth token persistence.
func GetTokenCacheClient() *redis.Client {
	if TokenCacheClient == nil {
		InitTokenCache()
	}
	return TokenCacheClient
}
