package llm

import (
	"context"
	"log"
	"time"
)

// LoggingProvider logs provider, model, latency and token usage for every
// request.
type LoggingProvider struct {
	inner    Provider
	provider string
}

func WithLogging(p Provider, providerName string) Provider {
	return &LoggingProvider{inner: p, provider: providerName}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	if err != nil {
		log.Printf("[ERROR] llm %s/%s purpose=%s latency=%s: %v", l.provider, l.inner.ModelID(), PurposeFrom(ctx), latency, err)
		return nil, err
	}

	log.Printf("[INFO] llm %s/%s purpose=%s latency=%s tokens=%d/%d",
		l.provider, resp.Model, PurposeFrom(ctx), latency, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose labels the request for logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
