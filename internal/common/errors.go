package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Input errors. ErrValidation is never sent to the network.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrNoToken      = errors.New("no access token")
)
