package shipment

import (
	"courier-tracking/internal/entities"
)

func ToDomain(s *ShipmentDB, events []TrackingEventDB) *entities.Shipment {
	if s == nil {
		return nil
	}

	history := make([]entities.TrackingEvent, 0, len(events))
	for _, e := range events {
		history = append(history, EventToDomain(e))
	}

	return &entities.Shipment{
		ID:         s.ID,
		TrackingID: s.TrackingID,
		Sender: entities.Party{
			Name:    s.SenderName,
			Address: s.SenderAddress,
			Contact: s.SenderContact,
		},
		Receiver: entities.Party{
			Name:    s.ReceiverName,
			Address: s.ReceiverAddress,
			Contact: s.ReceiverContact,
		},
		Origin:               s.Origin,
		Destination:          s.Destination,
		CurrentStatus:        entities.ShipmentStatus(s.CurrentStatus),
		CurrentLocation:      s.CurrentLocation,
		ExpectedDeliveryDate: s.ExpectedDeliveryDate.UTC(),
		History:              history,
		CreatedAt:            s.CreatedAt.UTC(),
		UpdatedAt:            s.UpdatedAt.UTC(),
	}
}

func EventToDomain(e TrackingEventDB) entities.TrackingEvent {
	return entities.TrackingEvent{
		Timestamp: e.OccurredAt.UTC(),
		Status:    entities.ShipmentStatus(e.Status),
		Location:  e.Location,
		Message:   e.Message,
	}
}

func FromDomain(s *entities.Shipment) *ShipmentDB {
	if s == nil {
		return nil
	}

	return &ShipmentDB{
		ID:                   s.ID,
		TrackingID:           s.TrackingID,
		SenderName:           s.Sender.Name,
		SenderAddress:        s.Sender.Address,
		SenderContact:        s.Sender.Contact,
		ReceiverName:         s.Receiver.Name,
		ReceiverAddress:      s.Receiver.Address,
		ReceiverContact:      s.Receiver.Contact,
		Origin:               s.Origin,
		Destination:          s.Destination,
		CurrentStatus:        s.CurrentStatus.String(),
		CurrentLocation:      s.CurrentLocation,
		ExpectedDeliveryDate: s.ExpectedDeliveryDate,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

// ToDomainList events сгруппированы по shipment_id и уже упорядочены по id.
func ToDomainList(shipmentsDB []ShipmentDB, events map[int64][]TrackingEventDB) []entities.Shipment {
	if len(shipmentsDB) == 0 {
		return []entities.Shipment{}
	}

	result := make([]entities.Shipment, len(shipmentsDB))
	for i, shipmentDB := range shipmentsDB {
		result[i] = *ToDomain(&shipmentDB, events[shipmentDB.ID])
	}
	return result
}
