package types

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError is an HTTP level error raised by middleware
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Kind classifies domain errors
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindStorage    Kind = "storage"
)

// AuthReason refines KindAuth errors. Callers outside the service must not
// be told which of NotFound or WrongPassword occurred.
type AuthReason string

const (
	ReasonUnknownUser   AuthReason = "not_found"
	ReasonWrongPassword AuthReason = "wrong_password"
	ReasonInvalidToken  AuthReason = "invalid"
	ReasonExpiredToken  AuthReason = "expired"
	ReasonForbidden     AuthReason = "forbidden"
)

// Error is the tagged outcome of a failed core operation
type Error struct {
	Kind    Kind
	Reason  AuthReason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status is the HTTP status hint for the boundary layer
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		if e.Reason == ReasonForbidden {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Validation returns a KindValidation error
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a KindConflict error
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Auth returns a KindAuth error with the given reason
func Auth(reason AuthReason, message string) *Error {
	return &Error{Kind: KindAuth, Reason: reason, Message: message}
}

// Storage wraps a store failure unrelated to business rules
func Storage(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op, Err: err}
}

// IsKind reports whether err is a domain error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsAuthReason reports whether err is an auth error with the given reason
func IsAuthReason(err error, reason AuthReason) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuth && e.Reason == reason
}
