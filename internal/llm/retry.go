package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff.
// A provider may answer off-schema once; the second bad answer is final.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidLeft := 1
	wait := r.config.InitialWait

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.config.MaxAttempts || !retryable(err, &invalidLeft) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.pause(wait, err)):
		}
		wait = min(time.Duration(float64(wait)*r.config.Multiplier), r.config.MaxWait)
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func retryable(err error, invalidLeft *int) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	switch kind {
	case KindTruncated, KindNotConfigured:
		return false
	case KindInvalidResponse:
		if *invalidLeft == 0 {
			return false
		}
		*invalidLeft--
		return true
	default:
		return true
	}
}

// pause returns the provider's Retry-After when it sent one, otherwise wait
// with up to 20% jitter either way.
func (r *RetryProvider) pause(wait time.Duration, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindRateLimited && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	if wait > r.config.MaxWait {
		wait = r.config.MaxWait
	}
	jitter := float64(wait) * 0.2 * (2*rand.Float64() - 1)
	return max(wait+time.Duration(jitter), 0)
}
