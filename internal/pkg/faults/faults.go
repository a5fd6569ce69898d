package faults

import (
	"errors"
	"fmt"
)

// Kind classifies a fault for HTTP mapping and batch reports.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindConflict    Kind = "conflict"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
)

// Fault is a domain error carrying its kind. Lifecycle transitions and the
// import reconciler return Faults so handlers can map them to status codes
// without string matching.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	return f.Message
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New builds a Fault with a plain message.
func New(kind Kind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// Validation builds a validation fault.
func Validation(format string, args ...interface{}) *Fault {
	return &Fault{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a conflict fault.
func Conflict(format string, args ...interface{}) *Fault {
	return &Fault{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a not-found fault.
func NotFound(format string, args ...interface{}) *Fault {
	return &Fault{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store error. The original error is kept for logs; the
// message is what callers may show to users.
func Persistence(err error, message string) *Fault {
	return &Fault{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the fault kind of err, or "" if err is not a Fault.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// IsKind reports whether err is a Fault of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// StatusCode maps a fault kind to an HTTP status. Non-fault errors map to 500.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindPersistence:
		return 500
	default:
		return 500
	}
}
