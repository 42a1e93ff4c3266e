package clients

import "errors"

var (
	// ErrInvalidEmail is returned when the email is empty or malformed
	ErrInvalidEmail = errors.New("a valid email is required")

	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")
)
