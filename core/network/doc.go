// Package network wraps a single remote call and normalizes its outcome.
//
// The Executor awaits a Call inside a failure-isolating scope and turns
// whatever happens into a Result: either the decoded body, or an
// *apierr.Error classified by the configured apierr.Parser.
//
//   - The call returns an error (or panics): network failure.
//   - The response status is outside 200-299: server failure.
//   - The response is 2xx but carries no body: server failure, through the
//     same path as a failed response.
//
// The executor never retries. The callable is invoked exactly once; retry
// policy belongs to the transport (see core/client).
//
// # Usage
//
//	exec := network.NewExecutor(network.WithLogger(log))
//	res := network.Execute(ctx, exec, func(ctx context.Context) (*network.Response[Item], error) {
//	    return client.GetItem(ctx, id)
//	})
//	if !res.Ok() {
//	    log.Warn("fetch failed", zap.Error(res.Err))
//	}
package network
