package backoff_adapter

import (
	"context"
	"time"

	"courier-tracking/pkg/retrier"

	"github.com/cenkalti/backoff/v4"
)

// NotifyFunc вызывается перед каждой повторной попыткой.
type NotifyFunc func(err error, next time.Duration)

type Retrier struct {
	config retrier.Config
	notify NotifyFunc
}

func New(config retrier.Config) *Retrier {
	return &Retrier{config: config}
}

// NewWithNotify то же, что New, но сообщает о каждом ретрае (метрики, логи).
func NewWithNotify(config retrier.Config, notify NotifyFunc) *Retrier {
	return &Retrier{
		config: config,
		notify: notify,
	}
}

func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	policy := backoff.WithContext(r.newBackOff(), ctx)

	operation := func() error {
		err := fn(ctx)
		if err != nil && r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	if r.notify == nil {
		return backoff.Retry(operation, policy)
	}
	return backoff.RetryNotify(operation, policy, backoff.Notify(r.notify))
}

func (r *Retrier) newBackOff() *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
}
