package utils

import (
	"context"
	"log"
	"time"

	"sacredgreeks/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient holds engagement scores, demo settings, the leaderboard and AI context.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// PubSubClient carries prayer wall events.
	PubSubClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "Auth Cache")
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

func InitPubSub() {
	PubSubClient = newRedisClient(config.AppConfig.RedisPubSubDB, "PubSub")
}

func GetPubSubClient() *redis.Client {
	if PubSubClient == nil {
		InitPubSub()
	}
	return PubSubClient
}

// CloseCaches closes every client that was opened.
func CloseCaches() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient, PubSubClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
