package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist
var ErrNotFound = errors.New("record not found")

// ErrEmailExists is returned when an account with the same email is already stored
var ErrEmailExists = errors.New("email already exists")
