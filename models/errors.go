package models

import "fmt"

type ErrorKind string

const (
	ErrValidation ErrorKind = "VALIDATION"
	ErrNotFound   ErrorKind = "NOT_FOUND"
	ErrConflict   ErrorKind = "CONFLICT"
	ErrState      ErrorKind = "STATE"
)

// AppError is the typed error surfaced by every engine operation. Field is
// filled for validation errors so the caller knows which input was rejected.
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func Validationf(field, format string, args ...interface{}) *AppError {
	return &AppError{Kind: ErrValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *AppError {
	return &AppError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func Statef(format string, args ...interface{}) *AppError {
	return &AppError{Kind: ErrState, Message: fmt.Sprintf(format, args...)}
}
