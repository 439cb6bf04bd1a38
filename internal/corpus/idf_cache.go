package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skill-match-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const idfCacheKey = "matching:idf:v1"

// RedisIDFCache keeps the IDF map as a JSON value with a TTL.
type RedisIDFCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIDFCache(client *redis.Client, ttl time.Duration) *RedisIDFCache {
	return &RedisIDFCache{client: client, ttl: ttl}
}

func (c *RedisIDFCache) Get(ctx context.Context) (models.IDFMap, bool, error) {
	data, err := c.client.Get(ctx, idfCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read idf cache: %w", err)
	}

	var idf models.IDFMap
	if err := json.Unmarshal(data, &idf); err != nil {
		return nil, false, fmt.Errorf("decode idf cache: %w", err)
	}
	if idf == nil {
		idf = models.IDFMap{}
	}
	return idf, true, nil
}

func (c *RedisIDFCache) Set(ctx context.Context, idf models.IDFMap) error {
	data, err := json.Marshal(idf)
	if err != nil {
		return fmt.Errorf("encode idf cache: %w", err)
	}
	if err := c.client.Set(ctx, idfCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write idf cache: %w", err)
	}
	return nil
}

func (c *RedisIDFCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, idfCacheKey).Err(); err != nil {
		return fmt.Errorf("invalidate idf cache: %w", err)
	}
	return nil
}
