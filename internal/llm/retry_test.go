package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialWait: time.Millisecond, MaxWait: 2 * time.Millisecond, Multiplier: 2}
}

func TestRetryProvider_RecoversFromTransientError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: newError(KindUnavailable, errors.New("502"))},
		MockResponse{Content: json.RawMessage(`{"answer":"ok"}`)},
	)
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Generate(context.Background(), Request{Schema: answerSchema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"answer":"ok"}`, string(resp.Content))
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetryProvider_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`not json`)},
		MockResponse{Content: json.RawMessage(`{"nope":true}`)},
		MockResponse{Content: json.RawMessage(`{"answer":"late"}`)},
	)
	p := WithRetry(mock, fastRetry(5))

	_, err := p.Generate(context.Background(), Request{Schema: answerSchema})
	assert.True(t, IsKind(err, KindInvalidResponse))
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetryProvider_StopsAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: newError(KindRateLimited, errors.New("429"))},
		MockResponse{Err: newError(KindRateLimited, errors.New("429"))},
		MockResponse{Err: newError(KindRateLimited, errors.New("429"))},
	)
	p := WithRetry(mock, fastRetry(2))

	_, err := p.Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetryProvider_DoesNotRetryTruncation(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindTruncated}})
	p := WithRetry(mock, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	assert.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryProvider_HonorsCancellation(t *testing.T) {
	mock := NewMockProvider()
	p := WithRetry(mock, fastRetry(3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryProvider_DoesNotRetryMissingKey(t *testing.T) {
	inner := &unconfiguredProvider{keyVar: "GEMINI_API_KEY"}
	p := WithRetry(inner, fastRetry(3))

	_, err := p.Generate(context.Background(), Request{})
	assert.True(t, IsKind(err, KindNotConfigured))
	assert.ErrorContains(t, err, "GEMINI_API_KEY is not set")
}

func TestRetryProvider_PauseRespectsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: fastRetry(3)}
	wait := r.pause(time.Millisecond, &Error{Kind: KindRateLimited, RetryAfter: 3 * time.Second})
	assert.Equal(t, 3*time.Second, wait)

	capped := r.pause(time.Hour, errors.New("x"))
	assert.LessOrEqual(t, capped, time.Duration(float64(2*time.Millisecond)*1.2))
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("calling provider: %w", newError(KindRateLimited, errors.New("429")))
	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindRateLimited, kind)
	assert.Equal(t, "LLM rate limited: 429", newError(KindRateLimited, errors.New("429")).Error())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
