package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. The taxonomy mirrors what the
// presentation layer needs to report: field validation, uniqueness conflicts,
// delete-blocking dependencies, missing rows, and plain data-access failures.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindDependency
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindDependency:
		return "dependency"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict, KindDependency:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func ValidationField(field, message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Field: field}
}

// Conflict reports a uniqueness collision on a specific field.
func Conflict(field, message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Field: field}
}

// Dependency reports a delete blocked by a live reference. The message names
// the blocking relationship so the caller can report it verbatim.
func Dependency(message string) *AppError {
	return &AppError{Kind: KindDependency, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal error", Err: err}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsNotFound(err error) bool   { return IsKind(err, KindNotFound) }
func IsConflict(err error) bool   { return IsKind(err, KindConflict) }
func IsDependency(err error) bool { return IsKind(err, KindDependency) }
func IsValidation(err error) bool { return IsKind(err, KindValidation) }
