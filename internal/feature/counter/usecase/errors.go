// Package usecase implements the business logic for the counter feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when the bearer identity does not match any
	// provisioned user. Handlers map it to 404.
	ErrUserNotFound = errors.New("user not found")
)
