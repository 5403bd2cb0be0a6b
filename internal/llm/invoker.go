package llm

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
)

// Invoker wraps a Client with the per-trial retry policy. The core never
// retries; all retry and backoff behavior lives here.
type Invoker struct {
	client      Client
	maxAttempts int
	retryDelay  time.Duration
}

// NewInvoker returns an Invoker with the default policy: three attempts with
// a two-second pause between them.
func NewInvoker(client Client) *Invoker {
	return &Invoker{
		client:      client,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// WithPolicy overrides the attempt count and inter-attempt delay.
func (inv *Invoker) WithPolicy(maxAttempts int, retryDelay time.Duration) *Invoker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Invoker{client: inv.client, maxAttempts: maxAttempts, retryDelay: retryDelay}
}

// Invoke submits the prompt, retrying transient failures. Context
// cancellation aborts both in-flight calls and retry waits.
func (inv *Invoker) Invoke(ctx context.Context, prompt, model string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= inv.maxAttempts; attempt++ {
		text, err := inv.client.Complete(ctx, prompt, model)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt < inv.maxAttempts {
			if err := sleep(ctx, inv.retryDelay); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("all %d attempts failed: %w", inv.maxAttempts, lastErr)
}

// sleep waits for d or until the context is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
