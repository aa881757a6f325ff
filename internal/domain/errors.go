package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Raised before any network call; rendered inline next to the form.
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// The backend answered with a non-2xx status or could not be reached.
	CodeBackend ErrorCode = "BACKEND_ERROR"

	// A view was reached without usable navigation state.
	CodeNavigationState ErrorCode = "NAVIGATION_STATE_ERROR"

	// Quiz flow errors
	CodeUnanswered    ErrorCode = "QUESTION_UNANSWERED"
	CodeInvalidOption ErrorCode = "INVALID_OPTION"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	if e.Message == "" {
		return string(e.Code)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a key/value pair and returns the same error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewBackendError records a failed backend call. message is the backend's own
// error text and may be empty; status is 0 when no response arrived.
func NewBackendError(status int, message string, cause error) *DomainError {
	return NewError(CodeBackend, message, cause).WithContext("status", status)
}

func NewNavigationStateError(reason string, cause error) *DomainError {
	return NewError(CodeNavigationState, reason, cause)
}

// CodeOf returns the code of the first DomainError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// BackendStatus returns the HTTP status recorded on a backend error, or 0.
func BackendStatus(err error) int {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Code == CodeBackend {
		if status, ok := domainErr.Context["status"].(int); ok {
			return status
		}
	}
	return 0
}

// MessageOr returns the user-facing message for err. Validation messages and
// backend-provided messages are shown verbatim; anything else collapses to
// fallback.
func MessageOr(err error, fallback string) string {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return fallback
	}
	switch domainErr.Code {
	case CodeValidation, CodeBackend, CodeUnanswered, CodeInvalidOption:
		if domainErr.Message != "" {
			return domainErr.Message
		}
	}
	return fallback
}
