// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNoAPIKey = errors.New("no API key provided")
)
