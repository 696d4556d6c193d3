package lifecycle

import (
	"fmt"
	"strings"

	"courier-tracking/internal/entities"
)

var rank = map[entities.ShipmentStatus]int{
	entities.StatusShipmentCreated: 0,
	entities.StatusPickedUp:        1,
	entities.StatusInTransit:       2,
	entities.StatusOutForDelivery:  3,
	entities.StatusDelivered:       4,
	entities.StatusReturned:        4,
}

// ParseStatus принимает только точные значения перечисления
// (пробелы по краям обрезаются).
func ParseStatus(raw string) (entities.ShipmentStatus, error) {
	status := entities.ShipmentStatus(strings.TrimSpace(raw))
	if !IsKnown(status) {
		return "", invalid("status", fmt.Sprintf("unknown status %q", raw))
	}
	return status, nil
}

func IsKnown(status entities.ShipmentStatus) bool {
	_, ok := rank[status]
	return ok
}

func IsTerminal(status entities.ShipmentStatus) bool {
	return status == entities.StatusDelivered || status == entities.StatusReturned
}
