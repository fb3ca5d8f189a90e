package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resource-sync/core/network"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// Client performs requests against the remote API.
type Client struct {
	cfg     Config
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
	group   singleflight.Group
}

// rawResponse is an undecoded answer shared between coalesced callers.
type rawResponse struct {
	status int
	body   []byte
}

// retryableStatusError marks a response whose status is worth retrying.
type retryableStatusError struct {
	status int
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("retryable status %d", e.status)
}

// New creates a Client from cfg.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", cfg.BaseURL)
	}

	// Ensure defaults if not set
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 60
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBaseMillis <= 0 {
		cfg.RetryBaseMillis = 200
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = "Authorization"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	return &Client{
		cfg:     cfg,
		baseURL: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{next: transport, header: cfg.AuthHeader, key: cfg.APIKey},
		},
		logger: logger,
	}, nil
}

// Get performs a GET and decodes a JSON body into T.
// Concurrent calls for the same path share one request. The shared request
// ignores caller cancellation and is bounded by the client timeout and retry
// limit; each caller still returns as soon as its own ctx ends.
func Get[T any](ctx context.Context, c *Client, path string) (*network.Response[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flight := context.WithoutCancel(ctx)
	ch := c.group.DoChan(http.MethodGet+" "+path, func() (any, error) {
		return c.do(flight, http.MethodGet, path)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("Coalesced request", zap.String("path", path))
		}
		return decode[T](res.Val.(*rawResponse))
	}
}

// do performs the request with retries and returns the last answer received.
func (c *Client) do(ctx context.Context, method, path string) (*rawResponse, error) {
	endpoint := c.baseURL.String() + "/" + strings.TrimLeft(path, "/")

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(c.cfg.RetryBaseMillis) * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0 // bounded by MaxRetries and ctx
	b.RandomizationFactor = 0.1
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxRetries)), ctx)

	var last *rawResponse
	attempt := 0

	err := backoff.Retry(func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			c.logger.Debug("Request failed", zap.String("url", endpoint), zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		last = &rawResponse{status: resp.StatusCode, body: body}
		if isRetryableStatus(resp.StatusCode) {
			c.logger.Debug("Retryable response", zap.String("url", endpoint), zap.Int("status", resp.StatusCode), zap.Int("attempt", attempt))
			return &retryableStatusError{status: resp.StatusCode}
		}
		return nil
	}, policy)

	if err != nil {
		// Retries exhausted on a bad status: hand the answer to the caller,
		// whose error parser classifies it.
		var statusErr *retryableStatusError
		if errors.As(err, &statusErr) && last != nil {
			return last, nil
		}
		return nil, err
	}

	return last, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// decode builds a typed response. An empty or null body yields a nil Body;
// a malformed 2xx body is an error.
func decode[T any](raw *rawResponse) (*network.Response[T], error) {
	resp := &network.Response[T]{StatusCode: raw.status, Raw: raw.body}

	trimmed := bytes.TrimSpace(raw.body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return resp, nil
	}
	if raw.status < 200 || raw.status > 299 {
		// Error bodies stay raw for the error parser.
		return resp, nil
	}

	var body T
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	resp.Body = &body
	return resp, nil
}

// authTransport attaches the API key to outgoing requests.
type authTransport struct {
	next   http.RoundTripper
	header string
	key    string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key == "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	value := t.key
	if strings.EqualFold(t.header, "Authorization") && !strings.Contains(value, " ") {
		value = "Bearer " + value
	}
	r.Header.Set(t.header, value)
	return t.next.RoundTrip(r)
}
