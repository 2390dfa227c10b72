package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error so the transport layer can map it
// to a user-facing status without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindSchedule is a battle id that doesn't exist on the shared calendar.
	KindSchedule
	// KindConflict is a duplicate of something that must be unique.
	KindConflict
	// KindNotFound is a missing record or an empty qualifying battle set.
	KindNotFound
	// KindValidation is a malformed identifier or parameter.
	KindValidation
	// KindConsistency is a broken internal invariant. Not recoverable.
	KindConsistency
)

// Error is the kind-tagged error returned by the services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a kind-tagged error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error with a kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of any error in the chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsSchedule(err error) bool    { return KindOf(err) == KindSchedule }
func IsConflict(err error) bool    { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool    { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool  { return KindOf(err) == KindValidation }
func IsConsistency(err error) bool { return KindOf(err) == KindConsistency }
