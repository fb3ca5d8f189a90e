// Package client is the HTTP transport behind remote fetches.
//
// It replaces a process-wide singleton client with an explicitly constructed
// handle: callers build a Client from Config and pass it to whatever needs to
// talk to the remote API.
//
// # Responsibilities
//
//   - Timeouts: connection, TLS and overall request timeouts from Config.
//   - Authentication: the configured API key is attached to every request.
//   - Retries: transport errors, 429 and 5xx answers are retried with
//     exponential backoff (cenkalti/backoff). The network executor above
//     never retries, so this is the only retry layer.
//   - Coalescing: concurrent identical GETs share one round trip
//     (singleflight). Each caller decodes its own copy of the body.
//   - Decoding: JSON bodies are decoded into network.Response values. An
//     empty or null body yields a nil Body so the executor can reject it.
//
// # Usage
//
//	c, err := client.New(cfg.Client, log)
//	resp, err := client.Get[Item](ctx, c, "/items/1")
package client
