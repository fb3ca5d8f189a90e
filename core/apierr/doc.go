// Package apierr classifies failed remote calls into a small error taxonomy.
//
// Every failure that crosses the network boundary is normalized into an
// *Error carrying a Kind, a human-readable message and, for failed responses,
// the HTTP status code. Callers above the executor never see raw transport
// errors.
//
// # Kinds
//
//   - KindNetwork: the call never produced a response (connection refused,
//     timeout, cancellation, body decode failure).
//   - KindServer: the remote answered, but with a non-2xx status or an empty
//     body on a 2xx status.
//   - KindUnknown: anything that could not be classified, including local
//     persistence failures surfaced by the reconcile engine.
//
// # Parser
//
// The Parser interface is the error-normalization collaborator. DefaultParser
// extracts a message from common JSON error envelopes ({"message": ...},
// {"error": ...}, {"detail": ...}) and falls back to the status text.
//
// # Usage
//
//	p := apierr.DefaultParser{}
//	err := p.OnAPICallFailure(500, body)
//	if errors.Is(err, apierr.ErrServer) {
//	    // degraded mode
//	}
package apierr
