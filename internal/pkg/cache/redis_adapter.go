package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier-tracking/pkg/logger"
	"courier-tracking/pkg/retrier"
	"courier-tracking/pkg/retrier/backoff_adapter"

	"github.com/redis/go-redis/v9"
)

type RedisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter redisURL в формате redis://[:password@]host[:port][/database].
func NewRedisAdapter(redisURL string) (*RedisAdapter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	return &RedisAdapter{client: redis.NewClient(opts)}, nil
}

// Connect создает адаптер и ждет, пока Redis ответит на ping.
func Connect(ctx context.Context, log logger.Logger, redisURL string) (*RedisAdapter, error) {
	adapter, err := NewRedisAdapter(redisURL)
	if err != nil {
		return nil, err
	}

	var attempt uint64
	r := backoff_adapter.NewWithNotify(retrier.StartupConfig(), func(err error, next time.Duration) {
		log.With(
			logger.NewField("attempt", attempt),
			logger.NewField("error", err),
			logger.NewField("next_in", next),
		).Warn("Redis ping failed, retrying")
	})

	err = r.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return adapter.Ping(ctx)
	})
	if err != nil {
		_ = adapter.Close()
		return nil, fmt.Errorf("redis connection: %w", err)
	}

	log.With(logger.NewField("attempts", attempt)).Info("Redis connection established")
	return adapter, nil
}

func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key %s: %w", key, ErrCacheMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		return fmt.Errorf("failed to delete keys %v: %w", keys, err)
	}
	return nil
}

func (r *RedisAdapter) AddMembers(ctx context.Context, key string, ttl time.Duration, members ...string) error {
	if len(members) == 0 {
		return nil
	}

	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, args...)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add members to %s: %w", key, err)
	}
	return nil
}

func (r *RedisAdapter) Members(ctx context.Context, key string) ([]string, error) {
	members, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read members of %s: %w", key, err)
	}
	return members, nil
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
