package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"skill-match-workers/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("rpc error: code = Unavailable")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		return fmt.Errorf("permission denied")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "operation topology failed")
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		return fmt.Errorf("connection refused")
	})
	require.Error(t, err)
	assert.Equal(t, fastRetry.MaxRetries+1, calls)
}

func TestRetry_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	err := Retry(ctx, slow, "topology", func(context.Context) error {
		cancel()
		return fmt.Errorf("deadline exceeded")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffDelay(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, backoffDelay(cfg, 0))
	assert.Equal(t, 2*time.Second, backoffDelay(cfg, 1))
	assert.Equal(t, 4*time.Second, backoffDelay(cfg, 2))
	assert.Equal(t, 5*time.Second, backoffDelay(cfg, 3))
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"dial refused", fmt.Errorf("dial tcp 127.0.0.1:26500: connection refused"), true},
		{"context deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), true},
		{"grpc unavailable", status.Error(codes.Unavailable, "gateway restarting"), true},
		{"grpc exhausted", status.Error(codes.ResourceExhausted, "backpressure"), true},
		{"grpc permission denied", status.Error(codes.PermissionDenied, "bad token"), false},
		{"grpc not found", status.Error(codes.NotFound, "job not found"), false},
		{"plain permanent", fmt.Errorf("permission denied"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(tt.err))
		})
	}
}

func TestClientConfigFrom(t *testing.T) {
	cfg := ClientConfigFrom(config.CamundaConfig{
		BrokerAddress:  "zeebe:26500",
		UsePlaintext:   true,
		RequestTimeout: 5000,
	})

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Equal(t, 5*time.Second, cfg.ConnectionTimeout)
	require.NotNil(t, cfg.RetryConfig)
	assert.Equal(t, 10, cfg.RetryConfig.MaxRetries)
}
