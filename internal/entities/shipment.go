package entities

import (
	"time"
)

type ShipmentStatus string

const (
	StatusShipmentCreated ShipmentStatus = "Shipment Created"
	StatusPickedUp        ShipmentStatus = "Picked Up"
	StatusInTransit       ShipmentStatus = "In Transit"
	StatusOutForDelivery  ShipmentStatus = "Out for Delivery"
	StatusDelivered       ShipmentStatus = "Delivered"
	StatusReturned        ShipmentStatus = "Returned"
)

// ShipmentStatuses в порядке прогрессии, Returned отдельная ветка.
var ShipmentStatuses = []ShipmentStatus{
	StatusShipmentCreated,
	StatusPickedUp,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusReturned,
}

func (s ShipmentStatus) String() string {
	return string(s)
}

// Party отправитель или получатель.
type Party struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Contact string `json:"contact" yaml:"contact"`
}

// TrackingEvent после добавления в историю не меняется.
type TrackingEvent struct {
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Status    ShipmentStatus `json:"status" yaml:"status"`
	Location  string         `json:"location" yaml:"location"`
	Message   string         `json:"message" yaml:"message"`
}

type Shipment struct {
	ID                   int64           `json:"id" yaml:"id"`
	TrackingID           string          `json:"trackingId" yaml:"trackingId"`
	Sender               Party           `json:"sender" yaml:"sender"`
	Receiver             Party           `json:"receiver" yaml:"receiver"`
	Origin               string          `json:"origin" yaml:"origin"`
	Destination          string          `json:"destination" yaml:"destination"`
	CurrentStatus        ShipmentStatus  `json:"currentStatus" yaml:"currentStatus"`
	CurrentLocation      string          `json:"currentLocation" yaml:"currentLocation"`
	ExpectedDeliveryDate time.Time       `json:"expectedDeliveryDate" yaml:"expectedDeliveryDate"`
	History              []TrackingEvent `json:"history" yaml:"history"`
	CreatedAt            time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt" yaml:"updatedAt"`
}

// ShipmentCreate входные данные для создания отправления.
type ShipmentCreate struct {
	Sender               Party
	Receiver             Party
	Origin               string
	Destination          string
	ExpectedDeliveryDate time.Time
}

// ShipmentModify целиком заменяет заданные поля, историю не трогает.
type ShipmentModify struct {
	Sender               *Party
	Receiver             *Party
	CurrentStatus        *ShipmentStatus
	CurrentLocation      *string
	ExpectedDeliveryDate *time.Time
}

type TrackingUpdate struct {
	TrackingID string
	Status     ShipmentStatus
	Location   string
	Message    string
}

type ShipmentEventType string

const (
	ShipmentEventCreated       ShipmentEventType = "shipment.created"
	ShipmentEventStatusUpdated ShipmentEventType = "shipment.status_updated"
	ShipmentEventEdited        ShipmentEventType = "shipment.edited"
	ShipmentEventDeleted       ShipmentEventType = "shipment.deleted"
)

// ShipmentEvent уходит в Kafka после каждой мутации.
type ShipmentEvent struct {
	Type       ShipmentEventType `json:"type"`
	TrackingID string            `json:"trackingId"`
	Status     ShipmentStatus    `json:"status,omitempty"`
	Location   string            `json:"location,omitempty"`
	Message    string            `json:"message,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}
