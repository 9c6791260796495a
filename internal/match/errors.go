package match

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a scoring failure.
type Kind string

const (
	KindInvalidState  Kind = "INVALID_STATE"
	KindValidation    Kind = "VALIDATION_ERROR"
	KindRuleViolation Kind = "RULE_VIOLATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindNothingToUndo Kind = "NOTHING_TO_UNDO"
	KindStorage       Kind = "STORAGE_ERROR"
)

// Error is returned by every scoring operation. State is left untouched whenever one is returned.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Kind so callers can write errors.Is(err, match.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Code is the machine-readable error code sent to clients.
func (e *Error) Code() string {
	return string(e.Kind)
}

// Status maps the kind to an HTTP status.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState, KindNothingToUndo:
		return http.StatusConflict
	case KindRuleViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is.
var (
	ErrInvalidState  = &Error{Kind: KindInvalidState}
	ErrValidation    = &Error{Kind: KindValidation}
	ErrRuleViolation = &Error{Kind: KindRuleViolation}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrNothingToUndo = &Error{Kind: KindNothingToUndo}
	ErrStorage       = &Error{Kind: KindStorage}
)

func invalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ruleViolation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindRuleViolation, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func nothingToUndo(message string) *Error {
	return &Error{Kind: KindNothingToUndo, Message: message}
}

func storageError(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, Cause: cause}
}

// KindOf extracts the Kind of err, or "" when err is not a scoring error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
