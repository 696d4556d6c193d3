package lifecycle

import (
	"fmt"
	"strings"

	"courier-tracking/internal/entities"
)

const (
	PolicyPermissive  = "permissive"
	PolicyForwardOnly = "forward_only"
)

// Policy решает, допустим ли переход между статусами.
type Policy interface {
	Allow(from, to entities.ShipmentStatus) error
}

// Permissive разрешает любой статус из любого.
type Permissive struct{}

func (Permissive) Allow(_, _ entities.ShipmentStatus) error {
	return nil
}

// ForwardOnly: ранг не убывает, из терминальных статусов переходов нет,
// Returned доступен из любого нетерминального.
type ForwardOnly struct{}

func (ForwardOnly) Allow(from, to entities.ShipmentStatus) error {
	if IsTerminal(from) {
		return invalid("status", fmt.Sprintf("shipment is already %s", from))
	}
	if to == entities.StatusReturned {
		return nil
	}
	if rank[to] < rank[from] {
		return invalid("status", fmt.Sprintf("cannot move from %s back to %s", from, to))
	}
	return nil
}

func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyPermissive:
		return Permissive{}, nil
	case PolicyForwardOnly:
		return ForwardOnly{}, nil
	default:
		return nil, fmt.Errorf("unknown transition policy %q", name)
	}
}
