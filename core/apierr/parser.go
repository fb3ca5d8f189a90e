package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"

	"resource-sync/core/utils"
)

// Parser normalizes remote call failures into classified errors.
type Parser interface {
	// OnNetworkFailure classifies an error raised while performing the call.
	OnNetworkFailure(err error) *Error
	// OnAPICallFailure classifies a response that was received but is not
	// usable: a non-2xx status, or a 2xx status with an empty body.
	OnAPICallFailure(statusCode int, body []byte) *Error
}

// DefaultParser is the Parser used when none is configured.
type DefaultParser struct{}

// envelopeFields are the JSON keys searched, in order, for an error message.
var envelopeFields = []string{"message", "error", "detail", "error_description"}

// OnNetworkFailure implements Parser.
func (DefaultParser) OnNetworkFailure(err error) *Error {
	if err == nil {
		return New(KindUnknown, "unknown network failure")
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(KindNetwork, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(KindNetwork, "request cancelled", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Wrap(KindNetwork, "request timed out", err)
	}

	return Wrap(KindNetwork, "network error: "+err.Error(), err)
}

// OnAPICallFailure implements Parser.
func (DefaultParser) OnAPICallFailure(statusCode int, body []byte) *Error {
	msg := messageFromBody(body)
	if msg == "" {
		if statusCode >= 200 && statusCode <= 299 {
			msg = "empty response body"
		} else if text := http.StatusText(statusCode); text != "" {
			msg = text
		} else {
			msg = "unexpected response"
		}
	}

	return New(KindServer, msg).WithStatus(statusCode)
}

// maxMessageBytes caps messages taken from plain-text bodies.
const maxMessageBytes = 256

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// messageFromBody extracts a message from a JSON error envelope.
// Non-JSON bodies are returned trimmed, so plain-text errors survive.
func messageFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return truncate(strings.ToValidUTF8(trimmed, ""), maxMessageBytes)
	}

	for _, field := range envelopeFields {
		v, ok := envelope[field]
		if !ok || v == nil {
			continue
		}
		// Nested {"error": {"message": "..."}} envelopes
		if nested, ok := v.(map[string]any); ok {
			if m, ok := nested["message"]; ok {
				return utils.ToString(m)
			}
			continue
		}
		if s := utils.ToString(v); s != "" {
			return s
		}
	}

	return ""
}
