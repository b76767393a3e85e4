package apperror

import (
	"errors"
)

// Kind classifies errors that are safe to show to the caller.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindPermission
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a recoverable, user-correctable failure.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches two *Error values by kind and message so package-level
// sentinels keep working after WithFields copies them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// WithFields returns a copy carrying field-level details.
func (e *Error) WithFields(fields map[string]string) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Fields: fields}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Permission(message string) *Error {
	return &Error{Kind: KindPermission, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsPermission(err error) bool { return KindOf(err) == KindPermission }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
