package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// ErrorKind classifies application failures so callers can branch on kind
// rather than message text.
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindStorage      ErrorKind = "STORAGE"
	KindInternal     ErrorKind = "INTERNAL"
)

// DomainError standardizes application errors.
type DomainError struct {
	Kind       ErrorKind
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError flags malformed or incomplete input.
func NewValidationError(message string) error {
	return &DomainError{Kind: KindValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewUnauthorized flags requests with no usable identity.
func NewUnauthorized(message string) error {
	return &DomainError{Kind: KindUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// NewForbidden flags role or scope mismatches.
func NewForbidden(message string) error {
	return &DomainError{Kind: KindForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

// NewNotFound flags missing resources.
func NewNotFound(resource string) error {
	return &DomainError{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewStorageError wraps a store fault. Detail is logged server side; the
// client only sees the short message.
func NewStorageError(err error) error {
	return &DomainError{
		Kind:       KindStorage,
		Message:    "storage failure, please try again",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternalError wraps an unexpected fault.
func NewInternalError(err error) error {
	return &DomainError{
		Kind:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Kind:       KindInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// KindOf extracts the error kind, defaulting to internal.
func KindOf(err error) ErrorKind {
	if de := ToDomainError(err); de != nil {
		return de.Kind
	}
	return KindInternal
}
