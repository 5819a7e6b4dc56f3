package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an operation failure.
type Kind int

const (
	KindStore      Kind = iota // persistence failure, unclassified
	KindValidation             // missing/malformed input
	KindConflict               // uniqueness violation
	KindNotFound               // referenced entity absent
)

// Error carries a kind plus a user-facing message. The message is returned
// verbatim in the response body, so constructors format it fully.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Store wraps an underlying persistence or coercion failure, exposing its
// raw message to the caller.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: err.Error()}
}

// KindOf extracts the kind of err; anything unclassified is a store failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
