package shipment

import "time"

type ShipmentDB struct {
	ID                   int64
	TrackingID           string
	SenderName           string
	SenderAddress        string
	SenderContact        string
	ReceiverName         string
	ReceiverAddress      string
	ReceiverContact      string
	Origin               string
	Destination          string
	CurrentStatus        string
	CurrentLocation      string
	ExpectedDeliveryDate time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type TrackingEventDB struct {
	ID         int64
	ShipmentID int64
	OccurredAt time.Time
	Status     string
	Location   string
	Message    string
}
