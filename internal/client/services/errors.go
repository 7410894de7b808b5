package services

import (
	"errors"

	"github.com/dmitrijs2005/pharmadesk/internal/client/client"
)

var (
	// ErrNoSession is returned when an operation needs a stored token and there is none.
	ErrNoSession = errors.New("no active session")
	// ErrInvalidDraft is returned by Create for drafts that fail local checks.
	ErrInvalidDraft = errors.New("invalid product draft")
	// ErrInvalidServerRecord is returned by Create when the server answer has no usable id.
	ErrInvalidServerRecord = errors.New("server returned a product without a valid id")
)

// Generic messages used when the server gives no reason.
const (
	msgLoginFailed     = "login failed"
	msgLogoutFailed    = "logout failed"
	msgLoginSuperseded = "login superseded by a newer request"
)

// flowError carries a user-facing message and the underlying cause.
type flowError struct {
	msg   string
	cause error
}

func (e *flowError) Error() string { return e.msg }
func (e *flowError) Unwrap() error { return e.cause }

// serverMessage returns the message the API gave for err, or fallback.
func serverMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
