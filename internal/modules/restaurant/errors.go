package restaurant

import "errors"

var (
	ErrNotFound             = errors.New("restaurant not found")
	ErrForbidden            = errors.New("not the restaurant owner")
	ErrAlreadyHasRestaurant = errors.New("owner already has a restaurant")
	ErrInvalidDate          = errors.New("invalid date")
)
