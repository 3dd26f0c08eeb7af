package errors

import (
	"errors"
	"fmt"
)

// Common error types for the token lifecycle core
var (
	// Exchange errors
	ErrMissingInput     = errors.New("missing required credential input")
	ErrUpstreamRejected = errors.New("provider rejected token exchange")
	ErrIncompleteBundle = errors.New("provider response missing mandatory token")

	// Decode errors
	ErrMalformedToken = errors.New("malformed token")
	ErrInvalidPayload = errors.New("invalid token payload")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Flow errors
	ErrInvalidState = errors.New("invalid state parameter")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
