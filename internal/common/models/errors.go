package models

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Services wrap
// them with %w so handlers can use errors.Is regardless of the message.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)
