package shipment

import "errors"

var (
	ErrInvalidTrackingID = errors.New("invalid tracking id")

	ErrShipmentNotFound = errors.New("shipment not found")
	ErrConflict         = errors.New("resource already exists")
)
