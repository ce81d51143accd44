package session

import (
	"errors"
	"fmt"
)

// AuthError reports a remote credential rejection at login. Credentials are
// never validated locally; this always originates from the provider.
type AuthError struct {
	Username string
	Err      error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("login rejected for %q: %v", e.Username, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *AuthError) Unwrap() error { return e.Err }

// IsAuthError returns true if err is (or wraps) a login rejection.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
