package usecase

import "errors"

var (
	// ErrValidation marks a request that is missing required fields
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is returned when a password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
)
