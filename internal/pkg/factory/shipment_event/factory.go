package shipment_event

import (
	"errors"
	"fmt"
	"time"

	"courier-tracking/internal/entities"
)

var ErrUndefinedEventType = errors.New("undefined shipment event type")

// EventFactory собирает событие для Kafka по типу мутации.
type EventFactory struct{}

func New() *EventFactory {
	return &EventFactory{}
}

func (f *EventFactory) Build(
	eventType entities.ShipmentEventType,
	shipment entities.Shipment,
	at time.Time,
) (entities.ShipmentEvent, error) {
	switch eventType {
	case entities.ShipmentEventCreated, entities.ShipmentEventEdited:
		return f.snapshot(eventType, shipment, at, ""), nil
	case entities.ShipmentEventStatusUpdated:
		return f.statusUpdated(shipment, at)
	case entities.ShipmentEventDeleted:
		return entities.ShipmentEvent{
			Type:       eventType,
			TrackingID: shipment.TrackingID,
			Status:     shipment.CurrentStatus,
			OccurredAt: at,
		}, nil
	default:
		return entities.ShipmentEvent{}, fmt.Errorf("%w: %s", ErrUndefinedEventType, eventType)
	}
}

func (f *EventFactory) snapshot(
	eventType entities.ShipmentEventType,
	shipment entities.Shipment,
	at time.Time,
	message string,
) entities.ShipmentEvent {
	return entities.ShipmentEvent{
		Type:       eventType,
		TrackingID: shipment.TrackingID,
		Status:     shipment.CurrentStatus,
		Location:   shipment.CurrentLocation,
		Message:    message,
		OccurredAt: at,
	}
}

func (f *EventFactory) statusUpdated(shipment entities.Shipment, at time.Time) (entities.ShipmentEvent, error) {
	if len(shipment.History) == 0 {
		return entities.ShipmentEvent{}, fmt.Errorf("shipment %s has empty history", shipment.TrackingID)
	}

	last := shipment.History[len(shipment.History)-1]
	return f.snapshot(entities.ShipmentEventStatusUpdated, shipment, at, last.Message), nil
}
