package network_test

import (
	"context"
	"errors"
	"testing"

	"resource-sync/core/apierr"
	"resource-sync/core/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type item struct {
	ID   int
	Name string
}

// countingCall wraps a response/error pair and records invocations.
func countingCall(resp *network.Response[item], err error, calls *int) network.Call[item] {
	return func(ctx context.Context) (*network.Response[item], error) {
		*calls++
		return resp, err
	}
}

func TestExecute(t *testing.T) {
	exec := network.NewExecutor(network.WithLogger(zap.NewNop()))

	tests := []struct {
		name       string
		resp       *network.Response[item]
		err        error
		wantOk     bool
		wantKind   apierr.Kind
		wantStatus int
	}{
		{
			name:   "Success",
			resp:   &network.Response[item]{StatusCode: 200, Body: &item{ID: 1, Name: "b"}},
			wantOk: true,
		},
		{
			name:   "Created",
			resp:   &network.Response[item]{StatusCode: 201, Body: &item{ID: 1}},
			wantOk: true,
		},
		{
			name:     "Timeout",
			err:      context.DeadlineExceeded,
			wantKind: apierr.KindNetwork,
		},
		{
			name:     "ConnectionError",
			err:      errors.New("connection reset by peer"),
			wantKind: apierr.KindNetwork,
		},
		{
			name:       "ServerError",
			resp:       &network.Response[item]{StatusCode: 500, Raw: []byte(`{"message":"boom"}`)},
			wantKind:   apierr.KindServer,
			wantStatus: 500,
		},
		{
			name:       "NotFound",
			resp:       &network.Response[item]{StatusCode: 404},
			wantKind:   apierr.KindServer,
			wantStatus: 404,
		},
		{
			name:       "EmptySuccess",
			resp:       &network.Response[item]{StatusCode: 200},
			wantKind:   apierr.KindServer,
			wantStatus: 200,
		},
		{
			name:     "NilResponse",
			wantKind: apierr.KindServer,
		},
		{
			name:       "ErrorStatusWithBody",
			resp:       &network.Response[item]{StatusCode: 503, Body: &item{ID: 1}},
			wantKind:   apierr.KindServer,
			wantStatus: 503,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			res := network.Execute[item](context.Background(), exec, countingCall(tt.resp, tt.err, &calls))

			assert.Equal(t, 1, calls, "call must be invoked exactly once")
			assert.Equal(t, tt.wantOk, res.Ok())
			if tt.wantOk {
				assert.Equal(t, *tt.resp.Body, res.Data)
				return
			}
			require.NotNil(t, res.Err)
			assert.Equal(t, tt.wantKind, res.Err.Kind)
			assert.Equal(t, tt.wantStatus, res.Err.StatusCode)
		})
	}
}

func TestExecute_ServerMessageFromBody(t *testing.T) {
	res := network.Execute[item](context.Background(), network.NewExecutor(), func(ctx context.Context) (*network.Response[item], error) {
		return &network.Response[item]{StatusCode: 500, Raw: []byte(`{"message":"database unavailable"}`)}, nil
	})

	require.False(t, res.Ok())
	assert.Equal(t, "database unavailable", res.Err.Message)
}

func TestExecute_RecoversPanic(t *testing.T) {
	res := network.Execute[item](context.Background(), network.NewExecutor(), func(ctx context.Context) (*network.Response[item], error) {
		panic("decoder exploded")
	})

	require.False(t, res.Ok())
	assert.Equal(t, apierr.KindNetwork, res.Err.Kind)
	assert.Contains(t, res.Err.Message, "decoder exploded")
}

func TestExecute_NilExecutorUsesDefaults(t *testing.T) {
	res := network.Execute[item](context.Background(), nil, func(ctx context.Context) (*network.Response[item], error) {
		return nil, errors.New("offline")
	})

	require.False(t, res.Ok())
	assert.ErrorIs(t, res.Err, apierr.ErrNetwork)
}

type stubParser struct {
	calls int
}

func (p *stubParser) OnNetworkFailure(err error) *apierr.Error {
	p.calls++
	return apierr.New(apierr.KindUnknown, "custom network")
}

func (p *stubParser) OnAPICallFailure(status int, body []byte) *apierr.Error {
	p.calls++
	return apierr.New(apierr.KindUnknown, "custom api").WithStatus(status)
}

func TestExecute_CustomParser(t *testing.T) {
	parser := &stubParser{}
	exec := network.NewExecutor(network.WithParser(parser))

	res := network.Execute[item](context.Background(), exec, func(ctx context.Context) (*network.Response[item], error) {
		return &network.Response[item]{StatusCode: 418}, nil
	})

	assert.Equal(t, 1, parser.calls)
	assert.Equal(t, "custom api", res.Err.Message)
	assert.Equal(t, 418, res.Err.StatusCode)
}

func TestToResource(t *testing.T) {
	ok := network.ToResource(network.Succeeded(item{ID: 1}))
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, 1, ok.Data.ID)

	failed := network.ToResource(network.Failed[item](apierr.New(apierr.KindServer, "boom")))
	assert.True(t, failed.IsFailure())
	assert.Equal(t, item{}, failed.Data)
	assert.Equal(t, "boom", failed.Err.Message)
}
