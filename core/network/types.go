package network

import (
	"context"

	"resource-sync/core/apierr"
)

// Response is the transport-agnostic shape of a remote answer.
type Response[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Body is the decoded body, nil when the remote sent nothing.
	Body *T
	// Raw is the undecoded body, handed to the error parser on failure.
	Raw []byte
}

// IsSuccess reports whether the status is in the 2xx range.
func (r *Response[T]) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Call performs one remote request.
type Call[T any] func(ctx context.Context) (*Response[T], error)

// Result is the normalized outcome of a Call: exactly one of Data or Err
// is meaningful.
type Result[T any] struct {
	// Data is the response body. Only meaningful when Err is nil.
	Data T
	// Err is the classified failure.
	Err *apierr.Error
}

// Succeeded creates a successful Result.
func Succeeded[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Failed creates a failed Result.
func Failed[T any](err *apierr.Error) Result[T] {
	return Result[T]{Err: err}
}

// Ok reports whether the call succeeded.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}
