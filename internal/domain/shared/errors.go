// Package shared holds types and errors that cross domain boundaries:
// transaction/entry enumerations and the tagged error taxonomy surfaced by
// the transaction engine.
package shared

import (
	"errors"
	"fmt"
)

// ErrorKind tags an engine failure with its business meaning. Callers match
// on the kind, never on transport status codes.
type ErrorKind string

const (
	// KindNotFound - one or both referenced accounts do not exist
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindInvalidState - a referenced account is not active
	KindInvalidState ErrorKind = "INVALID_STATE"
	// KindCurrencyMismatch - requested currency disagrees with an account's currency
	KindCurrencyMismatch ErrorKind = "CURRENCY_MISMATCH"
	// KindInsufficientFunds - the debited account's balance is below the requested amount
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	// KindConfigurationError - the designated system account is missing or misconfigured
	KindConfigurationError ErrorKind = "CONFIGURATION_ERROR"
	// KindInternal - unexpected failure in an underlying store
	KindInternal ErrorKind = "INTERNAL_ERROR"
)

// Error is a tagged error carrying a kind and a human-readable message.
// It optionally wraps the underlying cause for logging.
type Error struct {
	Kind    ErrorKind
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

// NewError creates a tagged error with a formatted message
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError tags an underlying error with a kind and message
func WrapError(kind ErrorKind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from an error chain. Untagged errors report
// KindInternal so that unexpected store failures never leak as anything else.
func KindOf(err error) ErrorKind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindInternal
}

// IsKind reports whether the error chain carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind == kind
	}
	return false
}
