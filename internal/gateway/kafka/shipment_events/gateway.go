package shipment_events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier-tracking/internal/entities"
	retrierconfig "courier-tracking/pkg/retrier"
	"courier-tracking/pkg/retrier/backoff_adapter"

	"github.com/IBM/sarama"
)

type Publisher struct {
	producer producer
	retrier  retrier
	topic    string
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		retrier:  backoff_adapter.New(retrierconfig.RequestConfig(isRetryable)),
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, event entities.ShipmentEvent) error {
	msg, err := toMessage(p.topic, event)
	if err != nil {
		return err
	}

	var attempt uint64
	start := time.Now()

	err = p.retrier.ExecuteWithContext(ctx, func(context.Context) error {
		attempt++
		_, _, err := p.producer.SendMessage(msg)
		return err
	})

	eventType := string(event.Type)
	PublishDuration.WithLabelValues(p.topic, eventType, result(err)).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		PublishRetriesTotal.WithLabelValues(p.topic, eventType).Inc()
	}

	if err != nil {
		return fmt.Errorf("gateway kafka, publish %s for %s: %w", eventType, event.TrackingID, err)
	}
	return nil
}

func isRetryable(err error) bool {
	switch {
	case errors.Is(err, sarama.ErrLeaderNotAvailable),
		errors.Is(err, sarama.ErrNotLeaderForPartition),
		errors.Is(err, sarama.ErrRequestTimedOut),
		errors.Is(err, sarama.ErrNotEnoughReplicas),
		errors.Is(err, sarama.ErrOutOfBrokers):
		return true
	default:
		return false
	}
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return "error"
}

// NoopPublisher используется, когда Kafka выключена в конфигурации.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, entities.ShipmentEvent) error {
	return nil
}
