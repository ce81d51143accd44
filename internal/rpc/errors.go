package rpc

import (
	"errors"
	"fmt"
)

// Fault is a fault reported by the provider's service layer, as opposed to
// a network or protocol failure.
type Fault struct {
	// Code is the provider's numeric fault code.
	Code int

	// Message is the provider's fault string.
	Message string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault %d: %s", f.Code, f.Message)
}

// IsFault returns true if err is (or wraps) a provider fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}
