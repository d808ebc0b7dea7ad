package persist

import (
	"context"

	"github.com/spetersoncode/flux/internal/retry"
)

// RetryAdapter retries transient failures of another adapter with
// exponential backoff. Interrupted or busy system calls and timeouts are
// transient; everything else fails immediately.
type RetryAdapter struct {
	next Adapter
	cfg  retry.Config
}

// WithRetry wraps next with the default backoff: 3 attempts starting at 20ms.
func WithRetry(next Adapter) *RetryAdapter {
	return WithRetryAttempts(next, retry.DefaultConfig().MaxAttempts)
}

// WithRetryAttempts wraps next, allowing up to attempts tries per call.
// One attempt or fewer disables retrying.
func WithRetryAttempts(next Adapter, attempts int) *RetryAdapter {
	if attempts <= 1 {
		return &RetryAdapter{next: next, cfg: retry.Disabled()}
	}
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = attempts
	return &RetryAdapter{next: next, cfg: cfg}
}

type loaded struct {
	data map[string]any
	ok   bool
}

// Load calls the wrapped Load.
func (r *RetryAdapter) Load(ctx context.Context) (map[string]any, bool, error) {
	res, err := retry.Do(ctx, r.cfg, func() (loaded, error) {
		data, ok, err := r.next.Load(ctx)
		return loaded{data: data, ok: ok}, err
	})
	return res.data, res.ok, err
}

// Save calls the wrapped Save.
func (r *RetryAdapter) Save(ctx context.Context, data map[string]any) error {
	_, err := retry.Do(ctx, r.cfg, func() (struct{}, error) {
		return struct{}{}, r.next.Save(ctx, data)
	})
	return err
}

// Clear calls the wrapped Clear.
func (r *RetryAdapter) Clear(ctx context.Context) error {
	_, err := retry.Do(ctx, r.cfg, func() (struct{}, error) {
		return struct{}{}, r.next.Clear(ctx)
	})
	return err
}
