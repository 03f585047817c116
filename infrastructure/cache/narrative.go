package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/churninsights/churn-insights-api/internal/config"
)

const narrativeKeyPrefix = "churn:narrative:"

type NarrativeCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, narrative string) error
}

type redisNarrativeCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}

	return client, nil
}

func NewNarrativeCache(client redis.Cmdable, ttl time.Duration) NarrativeCache {
	return &redisNarrativeCache{
		client: client,
		ttl:    ttl,
	}
}

// Key é o sha256 do modelo e do prompt renderizado
func Key(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return narrativeKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *redisNarrativeCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "redis get")
	}

	return value, true, nil
}

func (c *redisNarrativeCache) Set(ctx context.Context, key, narrative string) error {
	if err := c.client.Set(ctx, key, narrative, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}
