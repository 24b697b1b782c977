// Package cache implements dashboard caches on top of Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/link-financer/backend/internal/application/usecase/dashboard"
)

const (
	monthlyChartKeyPrefix = "link-financer:monthly-chart:"
	generationKeyPrefix   = "link-financer:monthly-chart-generation:"
)

var errStaleGeneration = errors.New("chart generation changed")

// RedisChartCache keeps one hash per user. Each field holds a JSON encoded chart,
// so a single DEL drops every variant of the user's charts.
// A counter per user is bumped on every invalidation and guards writes.
type RedisChartCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisChartCache creates a new RedisChartCache instance.
func NewRedisChartCache(client *redis.Client, ttl time.Duration) *RedisChartCache {
	return &RedisChartCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached chart for key.
func (c *RedisChartCache) Get(ctx context.Context, userID uuid.UUID, key string) (*dashboard.MonthlyChart, bool, error) {
	raw, err := c.client.HGet(ctx, userKey(userID), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached chart: %w", err)
	}

	var chart dashboard.MonthlyChart
	if err := json.Unmarshal(raw, &chart); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached chart: %w", err)
	}
	return &chart, true, nil
}

// Generation returns the user's invalidation counter, zero before the first write.
func (c *RedisChartCache) Generation(ctx context.Context, userID uuid.UUID) (int64, error) {
	return readGeneration(ctx, c.client, generationKey(userID))
}

// Set stores chart under key and refreshes the TTL of the user's hash.
// Nothing is stored when the user's generation moved past generation.
func (c *RedisChartCache) Set(
	ctx context.Context,
	userID uuid.UUID,
	generation int64,
	key string,
	chart *dashboard.MonthlyChart,
) error {
	raw, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}

	hashKey := userKey(userID)
	genKey := generationKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, genKey)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, hashKey, key, raw)
			if c.ttl > 0 {
				pipe.Expire(ctx, hashKey, c.ttl)
			}
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		slog.Debug("Skipped caching a stale monthly chart", "userID", userID, "key", key)
		return nil
	default:
		return fmt.Errorf("failed to store chart: %w", err)
	}
}

// Invalidate drops every cached chart of the user and advances its generation.
func (c *RedisChartCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, userKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate charts: %w", err)
	}
	return nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, client stringGetter, key string) (int64, error) {
	generation, err := client.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read chart generation: %w", err)
	}
	return generation, nil
}

func userKey(userID uuid.UUID) string {
	return monthlyChartKeyPrefix + userID.String()
}

func generationKey(userID uuid.UUID) string {
	return generationKeyPrefix + userID.String()
}
