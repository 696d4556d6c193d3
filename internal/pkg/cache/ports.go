package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss ключа нет или он истек.
var ErrCacheMiss = errors.New("cache miss")

// Cache порт хранилища ключ-значение с TTL.
type Cache interface {
	// Get возвращает ErrCacheMiss, если ключа нет.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set с ttl == 0 хранит значение без срока.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete отсутствующие ключи не считаются ошибкой.
	Delete(ctx context.Context, keys ...string) error

	// AddMembers добавляет строки в множество и продлевает его ttl.
	AddMembers(ctx context.Context, key string, ttl time.Duration, members ...string) error

	// Members пустое множество для отсутствующего ключа.
	Members(ctx context.Context, key string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
