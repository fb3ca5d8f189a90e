package apierr_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"unicode/utf8"

	"resource-sync/core/apierr"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestDefaultParser_OnNetworkFailure(t *testing.T) {
	p := apierr.DefaultParser{}

	tests := []struct {
		name    string
		err     error
		kind    apierr.Kind
		message string
	}{
		{"DeadlineExceeded", fmt.Errorf("get: %w", context.DeadlineExceeded), apierr.KindNetwork, "request timed out"},
		{"Canceled", context.Canceled, apierr.KindNetwork, "request cancelled"},
		{"NetTimeout", timeoutErr{}, apierr.KindNetwork, "request timed out"},
		{"ConnectionRefused", errors.New("dial tcp: connection refused"), apierr.KindNetwork, "network error: dial tcp: connection refused"},
		{"Nil", nil, apierr.KindUnknown, "unknown network failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.OnNetworkFailure(tt.err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.message, got.Message)
			assert.False(t, got.HasStatus())
			if tt.err != nil {
				assert.ErrorIs(t, got, tt.err)
			}
		})
	}
}

func TestDefaultParser_OnAPICallFailure(t *testing.T) {
	p := apierr.DefaultParser{}

	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"MessageEnvelope", 500, `{"message":"database unavailable"}`, "database unavailable"},
		{"ErrorEnvelope", 404, `{"error":"item not found"}`, "item not found"},
		{"NestedEnvelope", 400, `{"error":{"code":12,"message":"bad id"}}`, "bad id"},
		{"DetailEnvelope", 422, `{"detail":"name is required"}`, "name is required"},
		{"PlainText", 503, "upstream down\n", "upstream down"},
		{"EmptyBody", 500, "", "Internal Server Error"},
		{"EmptySuccess", 200, "", "empty response body"},
		{"NullSuccess", 200, "null", "empty response body"},
		{"UnknownStatus", 599, "", "unexpected response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.OnAPICallFailure(tt.status, []byte(tt.body))
			assert.Equal(t, apierr.KindServer, got.Kind)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.message, got.Message)
			assert.ErrorIs(t, got, apierr.ErrServer)
			assert.NotErrorIs(t, got, apierr.ErrNetwork)
		})
	}
}

func TestDefaultParser_LongPlainTextKeepsRunes(t *testing.T) {
	p := apierr.DefaultParser{}

	tests := []struct {
		name string
		body string
	}{
		// 'é' is two bytes, so byte 256 falls inside a rune.
		{"TwoByteRunes", "x" + strings.Repeat("é", 300)},
		{"ThreeByteRunes", strings.Repeat("€", 200)},
		{"InvalidInput", strings.Repeat("a", 255) + "\xff\xfe" + strings.Repeat("b", 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.OnAPICallFailure(502, []byte(tt.body))
			assert.True(t, utf8.ValidString(got.Message), "message must be valid UTF-8")
			assert.LessOrEqual(t, len(got.Message), 256)
			assert.Greater(t, len(got.Message), 250)
		})
	}
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "server error (500): boom", apierr.New(apierr.KindServer, "boom").WithStatus(500).Error())
	assert.Equal(t, "network error: offline", apierr.New(apierr.KindNetwork, "offline").Error())
}

func TestError_WithStatusCopies(t *testing.T) {
	base := apierr.New(apierr.KindServer, "boom")
	withStatus := base.WithStatus(502)

	assert.Equal(t, 0, base.StatusCode)
	assert.Equal(t, 502, withStatus.StatusCode)
}
