package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient fails a fixed number of times before succeeding.
type fakeClient struct {
	failures int
	calls    int
}

func (f *fakeClient) Complete(_ context.Context, prompt, model string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", errors.New("rate limit exceeded")
	}
	return "I would pay 150 and offer 120", nil
}

func (f *fakeClient) Close() error { return nil }

func TestInvoke_SucceedsFirstAttempt(t *testing.T) {
	client := &fakeClient{}
	inv := NewInvoker(client).WithPolicy(3, 0)

	text, err := inv.Invoke(context.Background(), "prompt", "model")
	require.NoError(t, err)
	assert.Equal(t, "I would pay 150 and offer 120", text)
	assert.Equal(t, 1, client.calls)
}

func TestInvoke_RetriesTransientFailures(t *testing.T) {
	client := &fakeClient{failures: 2}
	inv := NewInvoker(client).WithPolicy(3, 0)

	text, err := inv.Invoke(context.Background(), "prompt", "model")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.Equal(t, 3, client.calls)
}

func TestInvoke_ExhaustsAttempts(t *testing.T) {
	client := &fakeClient{failures: 10}
	inv := NewInvoker(client).WithPolicy(3, 0)

	_, err := inv.Invoke(context.Background(), "prompt", "model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 attempts failed")
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Equal(t, 3, client.calls)
}

func TestInvoke_ContextCancellationStopsRetries(t *testing.T) {
	client := &fakeClient{failures: 10}
	inv := NewInvoker(client).WithPolicy(3, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := inv.Invoke(ctx, "prompt", "model")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.calls)
}
