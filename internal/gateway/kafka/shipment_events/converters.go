package shipment_events

import (
	"encoding/json"
	"fmt"
	"time"

	"courier-tracking/internal/entities"

	"github.com/IBM/sarama"
)

type eventMessage struct {
	Type       string    `json:"type"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status,omitempty"`
	Location   string    `json:"location,omitempty"`
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// toMessage ключ сообщения tracking id, поэтому события одного
// отправления попадают в одну партицию и не переупорядочиваются.
func toMessage(topic string, event entities.ShipmentEvent) (*sarama.ProducerMessage, error) {
	payload, err := json.Marshal(eventMessage{
		Type:       string(event.Type),
		TrackingID: event.TrackingID,
		Status:     event.Status.String(),
		Location:   event.Location,
		Message:    event.Message,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal shipment event: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.TrackingID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
		},
	}, nil
}
