package orders

import "errors"

var (
	// ErrOrderNotFound is returned when no order has the requested id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrder is returned for order payloads that fail validation.
	ErrInvalidOrder = errors.New("invalid order")
)
