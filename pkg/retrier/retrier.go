package retrier

import (
	"context"
	"time"
)

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type ShouldRetryFunc func(error) bool

type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64

	// nil - ретраим любую ошибку, иначе только те, где функция вернула true
	ShouldRetry ShouldRetryFunc
}

// StartupConfig общий профиль для ожидания внешних зависимостей при старте
// (postgres, redis, kafka): долго и терпеливо.
func StartupConfig() Config {
	return Config{
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		MaxElapsedTime:  2 * time.Minute,
		Randomization:   0.5,
		Multiplier:      2,
	}
}

// RequestConfig профиль для ретраев внутри обработки запроса: коротко,
// чтобы уложиться в таймаут middleware.
func RequestConfig(shouldRetry ShouldRetryFunc) Config {
	return Config{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		MaxElapsedTime:  2 * time.Second,
		Randomization:   0.5,
		Multiplier:      2,
		ShouldRetry:     shouldRetry,
	}
}
