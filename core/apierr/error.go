package apierr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a remote call failure.
type Kind string

const (
	// KindNetwork is a transport failure: no usable response was received.
	KindNetwork Kind = "network"
	// KindServer is an application failure: non-2xx status or empty body.
	KindServer Kind = "server"
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = "unknown"
)

// Sentinel errors matched by errors.Is against an *Error of the same kind.
var (
	ErrNetwork = errors.New("network failure")
	ErrServer  = errors.New("server failure")
	ErrUnknown = errors.New("unknown failure")
)

// Error is a classified remote call failure.
type Error struct {
	// Kind is the failure class.
	Kind Kind `json:"kind"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// StatusCode is the HTTP status of the failed response, or 0 when no
	// response was received.
	StatusCode int `json:"status_code,omitempty"`

	cause error
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind that unwraps to cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// WithStatus returns a copy of e carrying the given status code.
func (e *Error) WithStatus(code int) *Error {
	c := *e
	c.StatusCode = code
	return &c
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	case ErrUnknown:
		return e.Kind == KindUnknown
	}
	return false
}

// HasStatus reports whether the error carries an HTTP status code.
func (e *Error) HasStatus() bool {
	return e.StatusCode != 0
}
