// Package reconcile implements the cache/network reconciliation protocol.
//
// An Engine decides, per run, whether the value held in a local store can be
// trusted as is or must be refreshed from a remote source, and reports every
// state transition to the consumer as a resource.Resource.
//
// # Architecture
//
// The engine is generic over two types:
//
//   - R: the local representation, read from the store (usually a pointer so
//     an absent value is nil).
//   - Q: the remote representation, returned by the remote call and handed to
//     the store for persistence.
//
// Store and transport are supplied through the Adapter interface. The engine
// only orchestrates; it holds no shared state and takes no locks, so distinct
// runs are fully independent.
//
// # Protocol
//
// Each call to Run produces a fresh sequence:
//
//  1. Ask the fetch policy. If it declines, subscribe to LoadFromLocal and
//     forward every value as Success. No Loading is emitted.
//  2. Otherwise subscribe to LoadFromLocal and forward every value as Loading.
//  3. Execute FetchRemote through a network.Executor.
//  4. Once at least one Loading has been delivered, drop the Loading
//     subscription. No Loading is emitted after this point.
//  5. On success, Persist the remote value, then subscribe again and forward
//     every value as Success. On failure, subscribe again and forward every
//     value as Failure carrying the classified error.
//
// The final subscription stays live until the consumer cancels the context,
// so later writes to the store keep flowing downstream.
//
// # Stalls and cancellation
//
// If the local store never emits, the run stalls on whatever was last
// emitted. No timeout is imposed; timeouts belong to the remote collaborator.
// Cancelling the context abandons a pending fetch and closes the output
// channel. A Persist that has already started is not rolled back.
//
// # Usage
//
//	engine := reconcile.New[*Item, Item](adapter,
//	    reconcile.WithShouldFetch(reconcile.StaleAfter(5*time.Minute, lastUpdated)),
//	    reconcile.WithLogger(log),
//	)
//	for state := range engine.Run(ctx) {
//	    render(state)
//	}
package reconcile
