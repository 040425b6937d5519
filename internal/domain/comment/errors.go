package comment

import "errors"

var (
	ErrNotFound      = errors.New("comment not found")
	ErrFieldNotFound = errors.New("field not found")
	ErrEmptyText     = errors.New("comment text cannot be empty")
	ErrTextTooLong   = errors.New("comment is too long")
)
