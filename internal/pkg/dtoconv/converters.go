// Package dtoconv переводит сущности в транспортные модели и обратно.
// Используется и сервером, и CLI клиентом.
package dtoconv

import (
	"fmt"
	"strings"
	"time"

	"courier-tracking/internal/entities"
	"courier-tracking/internal/generated/dto"
	"courier-tracking/internal/lifecycle"
)

// DateLayout формат expectedDeliveryDate в API.
const DateLayout = time.DateOnly

func ParseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, &lifecycle.ValidationError{Field: field, Reason: "is required"}
	}
	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		// фронтенд иногда шлет полный ISO timestamp
		date, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, &lifecycle.ValidationError{
				Field:  field,
				Reason: fmt.Sprintf("expected YYYY-MM-DD, got %q", raw),
			}
		}
	}
	// день берется в зоне отправителя, до перевода в UTC
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func ShipmentToDTO(s entities.Shipment) dto.Shipment {
	history := make([]dto.TrackingEvent, 0, len(s.History))
	for _, e := range s.History {
		history = append(history, EventToDTO(e))
	}

	return dto.Shipment{
		ID:                   s.ID,
		TrackingID:           s.TrackingID,
		Sender:               PartyToDTO(s.Sender),
		Receiver:             PartyToDTO(s.Receiver),
		Origin:               s.Origin,
		Destination:          s.Destination,
		CurrentStatus:        dto.ShipmentStatus(s.CurrentStatus),
		CurrentLocation:      s.CurrentLocation,
		ExpectedDeliveryDate: FormatDate(s.ExpectedDeliveryDate),
		History:              history,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func ShipmentsToDTO(shipments []entities.Shipment) []dto.Shipment {
	result := make([]dto.Shipment, len(shipments))
	for i, s := range shipments {
		result[i] = ShipmentToDTO(s)
	}
	return result
}

func ShipmentFromDTO(d dto.Shipment) (entities.Shipment, error) {
	var expected time.Time
	if d.ExpectedDeliveryDate != "" {
		var err error
		expected, err = ParseDate("expectedDeliveryDate", d.ExpectedDeliveryDate)
		if err != nil {
			return entities.Shipment{}, err
		}
	}

	history := make([]entities.TrackingEvent, 0, len(d.History))
	for _, e := range d.History {
		history = append(history, entities.TrackingEvent{
			Timestamp: e.Timestamp,
			Status:    entities.ShipmentStatus(e.Status),
			Location:  e.Location,
			Message:   e.Message,
		})
	}

	return entities.Shipment{
		ID:                   d.ID,
		TrackingID:           d.TrackingID,
		Sender:               PartyFromDTO(d.Sender),
		Receiver:             PartyFromDTO(d.Receiver),
		Origin:               d.Origin,
		Destination:          d.Destination,
		CurrentStatus:        entities.ShipmentStatus(d.CurrentStatus),
		CurrentLocation:      d.CurrentLocation,
		ExpectedDeliveryDate: expected,
		History:              history,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}, nil
}

func EventToDTO(e entities.TrackingEvent) dto.TrackingEvent {
	return dto.TrackingEvent{
		Timestamp: e.Timestamp,
		Status:    dto.ShipmentStatus(e.Status),
		Location:  e.Location,
		Message:   e.Message,
	}
}

func PartyToDTO(p entities.Party) dto.Party {
	return dto.Party{Name: p.Name, Address: p.Address, Contact: p.Contact}
}

func PartyFromDTO(p dto.Party) entities.Party {
	return entities.Party{Name: p.Name, Address: p.Address, Contact: p.Contact}
}

func CreateFromDTO(d dto.ShipmentCreate) (entities.ShipmentCreate, error) {
	expected, err := ParseDate("expectedDeliveryDate", d.ExpectedDeliveryDate)
	if err != nil {
		return entities.ShipmentCreate{}, err
	}

	return entities.ShipmentCreate{
		Sender:               PartyFromDTO(d.Sender),
		Receiver:             PartyFromDTO(d.Receiver),
		Origin:               d.Origin,
		Destination:          d.Destination,
		ExpectedDeliveryDate: expected,
	}, nil
}

func CreateToDTO(in entities.ShipmentCreate) dto.ShipmentCreate {
	return dto.ShipmentCreate{
		Sender:               PartyToDTO(in.Sender),
		Receiver:             PartyToDTO(in.Receiver),
		Origin:               in.Origin,
		Destination:          in.Destination,
		ExpectedDeliveryDate: FormatDate(in.ExpectedDeliveryDate),
	}
}

func ModifyFromDTO(d dto.ShipmentUpdate) (entities.ShipmentModify, error) {
	var patch entities.ShipmentModify

	if d.Sender != nil {
		sender := PartyFromDTO(*d.Sender)
		patch.Sender = &sender
	}
	if d.Receiver != nil {
		receiver := PartyFromDTO(*d.Receiver)
		patch.Receiver = &receiver
	}
	if d.CurrentStatus != nil {
		status := entities.ShipmentStatus(*d.CurrentStatus)
		patch.CurrentStatus = &status
	}
	if d.CurrentLocation != nil {
		location := *d.CurrentLocation
		patch.CurrentLocation = &location
	}
	if d.ExpectedDeliveryDate != nil {
		expected, err := ParseDate("expectedDeliveryDate", *d.ExpectedDeliveryDate)
		if err != nil {
			return entities.ShipmentModify{}, err
		}
		patch.ExpectedDeliveryDate = &expected
	}

	return patch, nil
}

func ModifyToDTO(patch entities.ShipmentModify) dto.ShipmentUpdate {
	var d dto.ShipmentUpdate

	if patch.Sender != nil {
		sender := PartyToDTO(*patch.Sender)
		d.Sender = &sender
	}
	if patch.Receiver != nil {
		receiver := PartyToDTO(*patch.Receiver)
		d.Receiver = &receiver
	}
	if patch.CurrentStatus != nil {
		status := dto.ShipmentStatus(*patch.CurrentStatus)
		d.CurrentStatus = &status
	}
	if patch.CurrentLocation != nil {
		location := *patch.CurrentLocation
		d.CurrentLocation = &location
	}
	if patch.ExpectedDeliveryDate != nil {
		date := FormatDate(*patch.ExpectedDeliveryDate)
		d.ExpectedDeliveryDate = &date
	}

	return d
}

func TrackingUpdateFromDTO(d dto.TrackingUpdate) entities.TrackingUpdate {
	return entities.TrackingUpdate{
		TrackingID: strings.TrimSpace(d.TrackingID),
		Status:     entities.ShipmentStatus(d.Status),
		Location:   d.Location,
		Message:    d.Message,
	}
}

func TrackingUpdateToDTO(upd entities.TrackingUpdate) dto.TrackingUpdate {
	return dto.TrackingUpdate{
		TrackingID: upd.TrackingID,
		Status:     dto.ShipmentStatus(upd.Status),
		Location:   upd.Location,
		Message:    upd.Message,
	}
}

func SessionToDTO(s entities.AdminSession) dto.AdminSession {
	return dto.AdminSession{Token: s.Token, ID: s.ID, Email: s.Email}
}

func SessionFromDTO(d dto.AdminSession) entities.AdminSession {
	return entities.AdminSession{Token: d.Token, ID: d.ID, Email: d.Email}
}
