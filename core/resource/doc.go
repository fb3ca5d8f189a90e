// Package resource defines the state wrapper emitted to observers of a
// reconciliation run.
//
// A Resource is exactly one of Loading, Success or Failure. Every variant may
// carry data: during Loading and Failure the data is whatever the local store
// currently holds (possibly stale or absent), so consumers can keep showing it
// instead of blanking their view.
//
// Resources are plain values. A new one is produced for every emission and
// none is ever modified after it is handed out.
//
// # Usage
//
//	switch r.Status {
//	case resource.StatusLoading:
//	    showSpinner(r.Message, r.Data)
//	case resource.StatusSuccess:
//	    render(r.Data)
//	case resource.StatusFailure:
//	    renderDegraded(r.Data, r.Err)
//	}
package resource
