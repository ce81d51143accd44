package schema

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes schema errors.
type ErrorCode string

const (
	// ErrCodeUnknownOperation indicates the operation is not in the catalog.
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"

	// ErrCodeUnknownArgument indicates a keyword not declared by the
	// operation's schema. Rejected rather than ignored: a typo must not
	// silently drop data.
	ErrCodeUnknownArgument ErrorCode = "UNKNOWN_ARGUMENT"

	// ErrCodeMissingArgument indicates a required keyword was omitted.
	ErrCodeMissingArgument ErrorCode = "MISSING_ARGUMENT"

	// ErrCodeBadArgument indicates a value of the wrong kind.
	ErrCodeBadArgument ErrorCode = "BAD_ARGUMENT"
)

// SchemaError reports a keyword argument that does not conform to an
// operation's schema. Schema errors are local caller mistakes: the call is
// never dispatched to the provider.
type SchemaError struct {
	Code    ErrorCode
	Op      string
	Param   string
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s: %s (param=%s)", e.Code, e.Op, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// IsSchemaError returns true if err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

func newUnknownOperation(op string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeUnknownOperation,
		Op:      op,
		Message: "operation not in catalog",
	}
}

func newUnknownArgument(op, param string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeUnknownArgument,
		Op:      op,
		Param:   param,
		Message: "keyword not declared by operation",
	}
}

func newMissingArgument(op, param string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeMissingArgument,
		Op:      op,
		Param:   param,
		Message: "required keyword missing",
	}
}

func newBadArgument(op, param, detail string) *SchemaError {
	return &SchemaError{
		Code:    ErrCodeBadArgument,
		Op:      op,
		Param:   param,
		Message: detail,
	}
}
