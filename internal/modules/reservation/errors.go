package reservation

import "errors"

var (
	ErrNotFound           = errors.New("reservation not found")
	ErrForbidden          = errors.New("not allowed")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrGuestInfoRequired  = errors.New("guest info required")
	ErrInvalidStatus      = errors.New("invalid status")
)
