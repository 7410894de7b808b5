package common

import "errors"

// Callers should use errors.Is to match these values.
var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// auth errors
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
