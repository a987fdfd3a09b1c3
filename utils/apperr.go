package utils

import (
	"errors"
	"net/http"
)

// Kind is the machine-checkable classification of a business-rule failure.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindNotFound     Kind = "not_found"
	KindOutOfArea    Kind = "out_of_area"
	KindOutOfWindow  Kind = "out_of_window"
	KindTypeMismatch Kind = "type_mismatch"
	KindStateConflict Kind = "state_conflict"
	KindInsufficient Kind = "insufficient_resource"
	KindTransient    Kind = "transient_store_failure"
)

// HTTPStatus maps a failure kind to its transport status code. Business-rule
// rejections are 400, missing entities 404, state conflicts and resource
// exhaustion 409, store trouble 500.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindStateConflict, KindInsufficient:
		return http.StatusConflict
	case KindTransient:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// AppError is a typed business failure. Every rejection carries a numeric
// code for clients plus a human-readable reason; it never wraps a partial
// write because all mutating operations run inside one transaction.
type AppError struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// NewAppError builds a typed failure.
func NewAppError(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// AsAppError extracts an AppError from err when present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
