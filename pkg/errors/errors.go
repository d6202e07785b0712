package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for the combine workflow.
var (
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// Recoverable, user-correctable conditions. The workflow never
	// advances on these; the caller retries with corrected input.
	ErrNoSectionsForSemester = New("NO_SECTIONS_FOR_SEMESTER", http.StatusUnprocessableEntity, "no courses list you as an instructor for that semester")
	ErrInvalidSectionDetails = New("INVALID_SECTION_DETAILS", http.StatusUnprocessableEntity, "please check the course details and try again")
	ErrTooFewSections        = New("TOO_FEW_SECTIONS", http.StatusUnprocessableEntity, "you must select at least two courses to combine")
	ErrMalformedCode         = New("MALFORMED_CODE", http.StatusUnprocessableEntity, "course code is not in the institutional format")

	// Fatal to the current operation.
	ErrRemoteFetch   = New("REMOTE_FETCH_FAILED", http.StatusBadGateway, "the LMS could not be reached; please retry or contact the site administrator")
	ErrWorkflowState = New("WORKFLOW_STATE", http.StatusConflict, "this step is not available in the current workflow state")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
