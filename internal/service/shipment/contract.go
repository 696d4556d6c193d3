//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=shipment_test
package shipment

import (
	"context"
	"time"

	"courier-tracking/internal/entities"
	"courier-tracking/pkg/logger"
)

type Repository interface {
	Create(ctx context.Context, shipment entities.Shipment) (*entities.Shipment, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*entities.Shipment, error)
	GetByTrackingIDForUpdate(ctx context.Context, trackingID string) (*entities.Shipment, error)
	GetAll(ctx context.Context) ([]entities.Shipment, error)
	Update(ctx context.Context, shipment entities.Shipment) error
	AppendEvent(ctx context.Context, shipmentID int64, event entities.TrackingEvent) error
	Delete(ctx context.Context, trackingID string) error
	CountOverdue(ctx context.Context, today time.Time) (int64, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event entities.ShipmentEvent) error
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type TrackingIDFactory interface {
	New() string
}

type EventFactory interface {
	Build(eventType entities.ShipmentEventType, shipment entities.Shipment, at time.Time) (entities.ShipmentEvent, error)
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
