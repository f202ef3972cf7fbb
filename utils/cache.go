// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"curabot/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionCacheClient backs the chatbot conversation sessions when SESSION_BACKEND=redis.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client used for conversation sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		GetLogger().Fatal("Failed to connect to Redis (Sessions)", zap.Error(err))
	}
}

// GetSessionCacheClient returns the Redis client for conversation sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
