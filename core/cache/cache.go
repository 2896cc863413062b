package cache

import (
	"context"
	"time"

	"court-watcher/core/config"
	"court-watcher/core/logger"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	// AcquireLock sets key only when it does not exist; returns whether the
	// lock was obtained.
	AcquireLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to redis", "addr", cfg.Addr, "error", err)
		return nil, err
	}

	logger.Info("Redis initialized successfully", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) AcquireLock(ctx context.Context, key string, token string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, token, ttl).Result()
}

func (c *redisCache) ReleaseLock(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
