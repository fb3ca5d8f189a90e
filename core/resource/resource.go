package resource

import (
	"fmt"

	"resource-sync/core/apierr"
)

// Status identifies the active variant of a Resource.
type Status string

const (
	// StatusLoading means a reconciliation is in progress.
	StatusLoading Status = "loading"
	// StatusSuccess means the data is the trusted local value.
	StatusSuccess Status = "success"
	// StatusFailure means the remote fetch failed; Data is the last local value.
	StatusFailure Status = "failure"
)

// Resource is a snapshot of a reconciled value and how it was obtained.
// T is usually a pointer type so that an absent local value is nil.
type Resource[T any] struct {
	// Status is the active variant.
	Status Status `json:"status"`
	// Data is the local value at the time of emission. It may be stale.
	Data T `json:"data"`
	// Message is the loading message. Only set for StatusLoading.
	Message string `json:"message,omitempty"`
	// Err is the classified failure. Only set for StatusFailure.
	Err *apierr.Error `json:"error,omitempty"`
}

// Loading creates a Loading resource.
func Loading[T any](data T, message string) Resource[T] {
	return Resource[T]{Status: StatusLoading, Data: data, Message: message}
}

// Success creates a Success resource.
func Success[T any](data T) Resource[T] {
	return Resource[T]{Status: StatusSuccess, Data: data}
}

// Failure creates a Failure resource carrying the best available data.
func Failure[T any](err *apierr.Error, data T) Resource[T] {
	return Resource[T]{Status: StatusFailure, Data: data, Err: err}
}

// IsLoading reports whether r is a Loading resource.
func (r Resource[T]) IsLoading() bool { return r.Status == StatusLoading }

// IsSuccess reports whether r is a Success resource.
func (r Resource[T]) IsSuccess() bool { return r.Status == StatusSuccess }

// IsFailure reports whether r is a Failure resource.
func (r Resource[T]) IsFailure() bool { return r.Status == StatusFailure }

// IsTerminal reports whether r ends the loading phase of a run.
// A run keeps emitting terminal states of the same status while the local
// store changes, but never returns to Loading.
func (r Resource[T]) IsTerminal() bool { return r.Status != StatusLoading }

func (r Resource[T]) String() string {
	switch r.Status {
	case StatusLoading:
		return fmt.Sprintf("Loading(%v, %q)", r.Data, r.Message)
	case StatusFailure:
		return fmt.Sprintf("Failure(%v, %v)", r.Err, r.Data)
	default:
		return fmt.Sprintf("Success(%v)", r.Data)
	}
}
