package errors

import (
	"errors"
	"fmt"
)

// Common error types for the SkillShare client
var (
	// Session errors
	ErrNoSession           = errors.New("no session")
	ErrMalformedToken      = errors.New("malformed token")
	ErrTokenExpired        = errors.New("token expired")
	ErrMalformedCredential = errors.New("invalid token format received from server")
	ErrTokenMissing        = errors.New("token not found in response")
	ErrSessionExpired      = errors.New("session expired")

	// Storage errors
	ErrStoreUnavailable  = errors.New("token store unavailable")
	ErrUnsupportedDriver = errors.New("unsupported token store driver")
	ErrSealedToken       = errors.New("unable to open sealed token")

	// OAuth redirect errors
	ErrOAuthFailed      = errors.New("oauth2 authentication failed")
	ErrUnknownProvider  = errors.New("unknown oauth2 provider")
	ErrCallbackTimedOut = errors.New("timed out waiting for oauth2 redirect")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternal       = errors.New("internal error")
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
