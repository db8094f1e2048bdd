package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrEmployeeNotFound is returned by an EmployeeLookup when the directory
// reports no such employee. Any other lookup failure means the directory
// could not be consumed.
var ErrEmployeeNotFound = errors.New("employee not found")

// Kind classifies a domain failure so the transport layer can pick a status
// code without inspecting messages.
type Kind int

const (
	// KindInvalidInput covers business-rule violations caused by the caller.
	KindInvalidInput Kind = iota
	// KindNotFound covers missing tasks and missing upstream employees.
	KindNotFound
	// KindUnavailable covers employee-directory failures other than a clean
	// not-found.
	KindUnavailable
)

// Error is a domain failure with a user-facing message. The wrapped cause,
// when present, is for server-side logs only and never reaches the caller.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func invalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func unavailable(cause error, message string) *Error {
	return &Error{Kind: KindUnavailable, Message: message, cause: cause}
}
