package database

import (
	"context"
	"fmt"
	"time"

	"skill-match-workers/internal/common/config"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPoolSize = 10

// RedisClient backs the IDF cache.
type RedisClient struct {
	Client *redis.Client
}

func redisOptions(cfg config.RedisConfig) *redis.Options {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultRedisPoolSize
	}
	return &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     poolSize,
		MinIdleConns: poolSize / 5,
	}
}

// OpenRedis creates the client and pings it once. On failure the client is
// closed and the ping error returned.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	client := &RedisClient{Client: redis.NewClient(redisOptions(cfg))}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
