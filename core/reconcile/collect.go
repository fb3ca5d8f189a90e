package reconcile

import (
	"context"
	"errors"

	"resource-sync/core/resource"
)

// ErrClosed is returned by Collect when a run ends before reaching a
// terminal state.
var ErrClosed = errors.New("reconcile: run ended before a terminal state")

// Collect drains states from a run up to and including the first terminal
// (Success or Failure) state. It returns the states seen so far together with
// ctx.Err() if ctx ends first, or ErrClosed if the channel closes first.
//
// A run whose local store never emits stalls forever; callers that cannot
// tolerate that must bound ctx.
func Collect[R any](ctx context.Context, states <-chan resource.Resource[R]) ([]resource.Resource[R], error) {
	var seen []resource.Resource[R]
	for {
		select {
		case state, ok := <-states:
			if !ok {
				return seen, ErrClosed
			}
			seen = append(seen, state)
			if state.IsTerminal() {
				return seen, nil
			}
		case <-ctx.Done():
			return seen, ctx.Err()
		}
	}
}

// Terminal runs the engine until its first terminal state and returns it.
// The run is torn down before returning.
func (e *Engine[R, Q]) Terminal(ctx context.Context) (resource.Resource[R], []resource.Resource[R], error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	states := e.Run(runCtx)
	seen, err := Collect(runCtx, states)
	cancel()
	// Drain so the run goroutine can observe cancellation and exit.
	for range states {
	}

	if err != nil {
		var zero resource.Resource[R]
		return zero, seen, err
	}
	return seen[len(seen)-1], seen, nil
}
