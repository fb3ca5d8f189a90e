package reconcile

import (
	"context"
	"sync"
	"time"

	"resource-sync/core/apierr"
	"resource-sync/core/network"
	"resource-sync/core/resource"

	"go.uber.org/zap"
)

// DefaultLoadingMessage is the message attached to Loading states.
const DefaultLoadingMessage = "Loading..."

// Engine reconciles one local value against its remote source.
// An Engine can be Run any number of times; each run is independent.
type Engine[R, Q any] struct {
	name           string
	adapter        Adapter[R, Q]
	shouldFetch    FetchPolicy
	loadingMessage string
	executor       *network.Executor
	logger         *zap.Logger
	metrics        *Metrics
}

// options collects the non-generic engine settings.
type options struct {
	name             string
	shouldFetch      FetchPolicy
	loadingMessage   string
	parser           apierr.Parser
	classifyNetwork  func(err error) *apierr.Error
	classifyResponse func(statusCode int, body []byte) *apierr.Error
	logger           *zap.Logger
	metrics          *Metrics
}

// Option configures an Engine.
type Option func(*options)

// WithName labels the engine in logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithShouldFetch sets the fetch policy. Defaults to Always.
func WithShouldFetch(policy FetchPolicy) Option {
	return func(o *options) {
		if policy != nil {
			o.shouldFetch = policy
		}
	}
}

// WithLoadingMessage sets the message carried by Loading states.
func WithLoadingMessage(msg string) Option {
	return func(o *options) {
		if msg != "" {
			o.loadingMessage = msg
		}
	}
}

// WithParser replaces the shared error-normalization collaborator.
func WithParser(p apierr.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

// WithNetworkErrorClassifier overrides classification of transport errors only.
func WithNetworkErrorClassifier(fn func(err error) *apierr.Error) Option {
	return func(o *options) { o.classifyNetwork = fn }
}

// WithResponseErrorClassifier overrides classification of failed responses only.
func WithResponseErrorClassifier(fn func(statusCode int, body []byte) *apierr.Error) Option {
	return func(o *options) { o.classifyResponse = fn }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates an Engine for the given adapter.
func New[R, Q any](adapter Adapter[R, Q], opts ...Option) *Engine[R, Q] {
	o := options{
		name:           "default",
		shouldFetch:    Always(),
		loadingMessage: DefaultLoadingMessage,
		parser:         apierr.DefaultParser{},
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.With(zap.String("engine", o.name))
	parser := classifier{
		base:     o.parser,
		network:  o.classifyNetwork,
		response: o.classifyResponse,
	}

	return &Engine[R, Q]{
		name:           o.name,
		adapter:        adapter,
		shouldFetch:    o.shouldFetch,
		loadingMessage: o.loadingMessage,
		executor:       network.NewExecutor(network.WithParser(parser), network.WithLogger(logger)),
		logger:         logger,
		metrics:        o.metrics,
	}
}

// Run starts a reconciliation and returns its sequence of states.
// The channel is closed when ctx is cancelled, or when the final local
// subscription ends.
func (e *Engine[R, Q]) Run(ctx context.Context) <-chan resource.Resource[R] {
	out := make(chan resource.Resource[R])
	go e.run(ctx, out)
	return out
}

func (e *Engine[R, Q]) run(ctx context.Context, out chan<- resource.Resource[R]) {
	defer close(out)

	// 1. Consult the fetch policy before anything is emitted
	if !e.shouldFetch() {
		e.metrics.recordOutcome(e.name, OutcomeSkipped)
		e.logger.Debug("Fetch skipped by policy")
		e.forward(ctx, out, resource.Success[R], nil)
		return
	}

	// 2. Bind the local store as the Loading source
	loadCtx, unbind := context.WithCancel(ctx)
	loadingDone := make(chan struct{})
	loadingSent := make(chan struct{})
	go func() {
		defer close(loadingDone)
		var once sync.Once
		e.forward(loadCtx, out, func(v R) resource.Resource[R] {
			return resource.Loading(v, e.loadingMessage)
		}, func() { once.Do(func() { close(loadingSent) }) })
	}()
	stopLoading := func() {
		// At least one Loading precedes the terminal state, unless the
		// local subscription ended first or the run was cancelled.
		select {
		case <-loadingSent:
		case <-loadingDone:
		case <-ctx.Done():
		}
		unbind()
		<-loadingDone
	}

	// 3. Fetch remote
	started := time.Now()
	result := network.Execute[Q](ctx, e.executor, e.adapter.FetchRemote)
	e.metrics.recordFetch(e.name, time.Since(started))

	// 4. Stop emitting Loading once the first one is out
	stopLoading()

	if ctx.Err() != nil {
		e.logger.Debug("Run cancelled during fetch")
		return
	}

	// 5. Branch on the outcome
	if !result.Ok() {
		e.metrics.recordOutcome(e.name, outcomeFor(result.Err))
		e.logger.Warn("Remote fetch failed",
			zap.String("kind", string(result.Err.Kind)),
			zap.Int("status", result.Err.StatusCode),
			zap.String("message", result.Err.Message),
		)
		e.forward(ctx, out, failureWith[R](result.Err), nil)
		return
	}

	data := result.Data
	if err := e.adapter.Persist(ctx, &data); err != nil {
		if ctx.Err() != nil {
			return
		}
		e.metrics.recordOutcome(e.name, OutcomePersistError)
		e.logger.Error("Persisting remote data failed", zap.Error(err))
		e.forward(ctx, out, failureWith[R](apierr.Wrap(apierr.KindUnknown, "persist failed: "+err.Error(), err)), nil)
		return
	}

	e.metrics.recordOutcome(e.name, OutcomeSuccess)
	e.logger.Debug("Remote data persisted")
	e.forward(ctx, out, resource.Success[R], nil)
}

// forward subscribes to the local store and sends every value through wrap
// until ctx is done or the subscription ends. sent, if set, runs after each
// delivered state.
func (e *Engine[R, Q]) forward(ctx context.Context, out chan<- resource.Resource[R], wrap func(R) resource.Resource[R], sent func()) {
	local := e.adapter.LoadFromLocal(ctx)
	for {
		select {
		case v, ok := <-local:
			if !ok {
				return
			}
			state := wrap(v)
			select {
			case out <- state:
				e.metrics.recordEmission(e.name, state.Status)
				if sent != nil {
					sent()
				}
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func failureWith[R any](err *apierr.Error) func(R) resource.Resource[R] {
	return func(v R) resource.Resource[R] {
		return resource.Failure(err, v)
	}
}

func outcomeFor(err *apierr.Error) string {
	switch err.Kind {
	case apierr.KindNetwork:
		return OutcomeNetworkError
	case apierr.KindServer:
		return OutcomeServerError
	default:
		return OutcomeOtherError
	}
}

// classifier applies per-engine overrides on top of a base parser.
type classifier struct {
	base     apierr.Parser
	network  func(err error) *apierr.Error
	response func(statusCode int, body []byte) *apierr.Error
}

func (c classifier) OnNetworkFailure(err error) *apierr.Error {
	if c.network != nil {
		return c.network(err)
	}
	return c.base.OnNetworkFailure(err)
}

func (c classifier) OnAPICallFailure(statusCode int, body []byte) *apierr.Error {
	if c.response != nil {
		return c.response(statusCode, body)
	}
	return c.base.OnAPICallFailure(statusCode, body)
}
