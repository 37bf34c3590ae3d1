package apperrors

import "fmt"

// Kind classifies a domain error so handlers can map it to an HTTP
// status in one place.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindConflict   Kind = "CONFLICT"
	KindNotFound   Kind = "NOT_FOUND"
	KindState      Kind = "STATE"
	KindStorage    Kind = "STORAGE"
)

type Error struct {
	Kind    Kind
	Message string
	Details interface{} // structured payload, e.g. conflicting blocks
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string, details interface{}) *Error {
	return &Error{Kind: KindConflict, Message: message, Details: details}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func State(format string, args ...interface{}) *Error {
	return &Error{Kind: KindState, Message: fmt.Sprintf(format, args...)}
}

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage operation failed", Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := err.(*Error)
	return ok && appErr.Kind == kind
}
