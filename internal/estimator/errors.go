package estimator

import (
	"fmt"
	"strings"
)

// ErrorType categorizes estimator failures
type ErrorType string

const (
	// ErrTypeNetwork indicates the request never produced a response
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeStatus indicates a non-2xx response
	ErrTypeStatus ErrorType = "status"

	// ErrTypeDecode indicates a response body that is not the expected JSON object
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeMissingField indicates a well-formed body without the required field
	ErrTypeMissingField ErrorType = "missing_field"

	// ErrTypeInternal indicates a failure building the request
	ErrTypeInternal ErrorType = "internal"
)

// Sentinels for errors.Is matching by type.
var (
	ErrNetwork      = &Error{Type: ErrTypeNetwork}
	ErrStatus       = &Error{Type: ErrTypeStatus}
	ErrDecode       = &Error{Type: ErrTypeDecode}
	ErrMissingField = &Error{Type: ErrTypeMissingField}
)

// Error is returned by every Client operation
type Error struct {
	Type       ErrorType
	Message    string
	Endpoint   string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}

	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same type
func (e *Error) Is(target error) bool {
	if te, ok := target.(*Error); ok {
		return e.Type == te.Type
	}
	return false
}

func newError(errType ErrorType, endpoint, message string) *Error {
	return &Error{Type: errType, Endpoint: endpoint, Message: message}
}

func newErrorWithCause(errType ErrorType, endpoint, message string, cause error) *Error {
	return &Error{Type: errType, Endpoint: endpoint, Message: message, Cause: cause}
}

func newStatusError(endpoint string, status int) *Error {
	return &Error{
		Type:       ErrTypeStatus,
		Endpoint:   endpoint,
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status %d", status),
	}
}
