package network

import (
	"context"
	"fmt"

	"resource-sync/core/apierr"
	"resource-sync/core/resource"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "resource-sync/core/network"

// Executor runs remote calls and classifies their failures.
// It holds no per-call state and is safe for concurrent use.
type Executor struct {
	parser apierr.Parser
	logger *zap.Logger
	tracer trace.Tracer
}

// Option configures an Executor.
type Option func(*Executor)

// WithParser sets the error-normalization collaborator.
func WithParser(p apierr.Parser) Option {
	return func(e *Executor) {
		if p != nil {
			e.parser = p
		}
	}
}

// WithLogger sets the logger used for call outcomes.
func WithLogger(l *zap.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracer overrides the tracer. Defaults to the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Executor) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewExecutor creates an Executor using apierr.DefaultParser unless configured otherwise.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		parser: apierr.DefaultParser{},
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute invokes call exactly once and normalizes its outcome.
// It never panics and never returns a raw transport error.
func Execute[T any](ctx context.Context, e *Executor, call Call[T]) Result[T] {
	if e == nil {
		e = NewExecutor()
	}

	ctx, span := e.tracer.Start(ctx, "network.execute")
	defer span.End()

	resp, err := invoke(ctx, call)
	if err != nil {
		apiErr := e.parser.OnNetworkFailure(err)
		recordFailure(span, apiErr)
		e.logger.Debug("Remote call failed", zap.String("kind", string(apiErr.Kind)), zap.Error(err))
		return Failed[T](apiErr)
	}

	// A nil response without an error is an empty answer.
	if resp == nil {
		apiErr := e.parser.OnAPICallFailure(0, nil)
		recordFailure(span, apiErr)
		e.logger.Debug("Remote call returned no response")
		return Failed[T](apiErr)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !resp.IsSuccess() || resp.Body == nil {
		apiErr := e.parser.OnAPICallFailure(resp.StatusCode, resp.Raw)
		recordFailure(span, apiErr)
		e.logger.Debug("Remote call rejected",
			zap.Int("status", resp.StatusCode),
			zap.Bool("empty_body", resp.Body == nil),
			zap.String("message", apiErr.Message),
		)
		return Failed[T](apiErr)
	}

	span.SetStatus(codes.Ok, "")
	e.logger.Debug("Remote call succeeded", zap.Int("status", resp.StatusCode))
	return Succeeded(*resp.Body)
}

// invoke runs call and converts a panic into an error.
func invoke[T any](ctx context.Context, call Call[T]) (resp *Response[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("remote call panicked: %v", r)
		}
	}()
	return call(ctx)
}

func recordFailure(span trace.Span, apiErr *apierr.Error) {
	span.SetAttributes(attribute.String("error.kind", string(apiErr.Kind)))
	span.SetStatus(codes.Error, apiErr.Message)
}

// ToResource converts a Result into a terminal Resource for callers that do
// not reconcile against a local store. Failures carry the zero value.
func ToResource[T any](r Result[T]) resource.Resource[T] {
	if r.Ok() {
		return resource.Success(r.Data)
	}
	var zero T
	return resource.Failure(r.Err, zero)
}
