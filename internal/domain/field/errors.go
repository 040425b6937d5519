package field

import "errors"

var (
	ErrNotFound        = errors.New("field not found")
	ErrWallNotFound    = errors.New("wall not found")
	ErrWallOutOfBounds = errors.New("wall exceeds field boundaries")
	ErrNotOwner        = errors.New("caller does not own this field")
	ErrInvalidGridSize = errors.New("invalid grid size")
)
