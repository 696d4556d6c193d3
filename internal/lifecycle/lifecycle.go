// Package lifecycle модель жизненного цикла отправления: создание,
// добавление событий в историю и правка без события. Функции чистые,
// входное отправление никогда не меняется.
package lifecycle

import (
	"slices"
	"strings"
	"time"

	"courier-tracking/internal/entities"
)

const SeedMessage = "Shipment created"

func Create(in entities.ShipmentCreate, trackingID string, now time.Time) (entities.Shipment, error) {
	if err := validateCreate(in); err != nil {
		return entities.Shipment{}, err
	}

	origin := strings.TrimSpace(in.Origin)
	return entities.Shipment{
		TrackingID:           trackingID,
		Sender:               trimParty(in.Sender),
		Receiver:             trimParty(in.Receiver),
		Origin:               origin,
		Destination:          strings.TrimSpace(in.Destination),
		CurrentStatus:        entities.StatusShipmentCreated,
		CurrentLocation:      origin,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		History: []entities.TrackingEvent{{
			Timestamp: now,
			Status:    entities.StatusShipmentCreated,
			Location:  origin,
			Message:   SeedMessage,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AppendStatusUpdate добавляет ровно одно событие и переносит его статус
// и локацию в текущее состояние.
func AppendStatusUpdate(
	s entities.Shipment,
	upd entities.TrackingUpdate,
	now time.Time,
	policy Policy,
) (entities.Shipment, error) {
	event, err := NewEvent(upd, now)
	if err != nil {
		return entities.Shipment{}, err
	}

	if policy == nil {
		policy = Permissive{}
	}
	if err := policy.Allow(s.CurrentStatus, event.Status); err != nil {
		return entities.Shipment{}, err
	}

	out := clone(s)
	out.History = append(out.History, event)
	out.CurrentStatus = event.Status
	out.CurrentLocation = event.Location
	out.UpdatedAt = now
	return out, nil
}

// NewEvent проверяет обновление и собирает событие истории.
func NewEvent(upd entities.TrackingUpdate, now time.Time) (entities.TrackingEvent, error) {
	status, err := ParseStatus(upd.Status.String())
	if err != nil {
		return entities.TrackingEvent{}, err
	}
	location := strings.TrimSpace(upd.Location)
	if location == "" {
		return entities.TrackingEvent{}, invalid("location", "is required")
	}
	message := strings.TrimSpace(upd.Message)
	if message == "" {
		return entities.TrackingEvent{}, invalid("message", "is required")
	}

	return entities.TrackingEvent{
		Timestamp: now,
		Status:    status,
		Location:  location,
		Message:   message,
	}, nil
}

// Edit заменяет заданные поля целиком. История не меняется, поэтому
// CurrentStatus может разойтись с последним событием.
func Edit(s entities.Shipment, patch entities.ShipmentModify, now time.Time) (entities.Shipment, error) {
	if err := ValidateModify(patch); err != nil {
		return entities.Shipment{}, err
	}

	out := clone(s)
	if patch.Sender != nil {
		out.Sender = trimParty(*patch.Sender)
	}
	if patch.Receiver != nil {
		out.Receiver = trimParty(*patch.Receiver)
	}
	if patch.CurrentStatus != nil {
		out.CurrentStatus = entities.ShipmentStatus(strings.TrimSpace(patch.CurrentStatus.String()))
	}
	if patch.CurrentLocation != nil {
		out.CurrentLocation = strings.TrimSpace(*patch.CurrentLocation)
	}
	if patch.ExpectedDeliveryDate != nil {
		out.ExpectedDeliveryDate = *patch.ExpectedDeliveryDate
	}
	out.UpdatedAt = now
	return out, nil
}

func ValidateModify(patch entities.ShipmentModify) error {
	if patch.Sender == nil &&
		patch.Receiver == nil &&
		patch.CurrentStatus == nil &&
		patch.CurrentLocation == nil &&
		patch.ExpectedDeliveryDate == nil {
		return invalid("shipment", "no fields to update")
	}
	if patch.Sender != nil {
		if err := validateParty("sender", *patch.Sender); err != nil {
			return err
		}
	}
	if patch.Receiver != nil {
		if err := validateParty("receiver", *patch.Receiver); err != nil {
			return err
		}
	}
	if patch.CurrentStatus != nil {
		if _, err := ParseStatus(patch.CurrentStatus.String()); err != nil {
			return err
		}
	}
	if patch.CurrentLocation != nil && strings.TrimSpace(*patch.CurrentLocation) == "" {
		return invalid("currentLocation", "must not be empty")
	}
	if patch.ExpectedDeliveryDate != nil && patch.ExpectedDeliveryDate.IsZero() {
		return invalid("expectedDeliveryDate", "must not be empty")
	}
	return nil
}

func ValidateCreate(in entities.ShipmentCreate) error {
	return validateCreate(in)
}

// HistoryNewestFirst проекция истории для отображения.
func HistoryNewestFirst(s entities.Shipment) []entities.TrackingEvent {
	out := slices.Clone(s.History)
	slices.Reverse(out)
	return out
}

func validateCreate(in entities.ShipmentCreate) error {
	if err := validateParty("sender", in.Sender); err != nil {
		return err
	}
	if err := validateParty("receiver", in.Receiver); err != nil {
		return err
	}
	if strings.TrimSpace(in.Origin) == "" {
		return invalid("origin", "is required")
	}
	if strings.TrimSpace(in.Destination) == "" {
		return invalid("destination", "is required")
	}
	if in.ExpectedDeliveryDate.IsZero() {
		return invalid("expectedDeliveryDate", "is required")
	}
	return nil
}

func validateParty(field string, p entities.Party) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return invalid(field+".name", "is required")
	case strings.TrimSpace(p.Address) == "":
		return invalid(field+".address", "is required")
	case strings.TrimSpace(p.Contact) == "":
		return invalid(field+".contact", "is required")
	}
	return nil
}

func trimParty(p entities.Party) entities.Party {
	return entities.Party{
		Name:    strings.TrimSpace(p.Name),
		Address: strings.TrimSpace(p.Address),
		Contact: strings.TrimSpace(p.Contact),
	}
}

func clone(s entities.Shipment) entities.Shipment {
	out := s
	// запас под одно событие, чтобы append не писал в массив входа
	out.History = make([]entities.TrackingEvent, len(s.History), len(s.History)+1)
	copy(out.History, s.History)
	return out
}
