package profile

import "errors"

var (
	ErrNotFound         = errors.New("profile not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrInvalidBirthDate = errors.New("birth date is invalid")
	ErrCommentNotFound  = errors.New("profile comment not found")
	ErrNotAllowed       = errors.New("permission denied")
	ErrInvalidImage     = errors.New("invalid image file")
)
