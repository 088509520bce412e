package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Kind classifies a provider failure so callers and the retry layer can
// decide what to do without knowing which SDK produced it.
type Kind int

const (
	KindUnavailable Kind = iota
	KindRateLimited
	KindInvalidResponse
	KindTruncated
	KindNotConfigured
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindInvalidResponse:
		return "invalid response"
	case KindTruncated:
		return "response truncated"
	case KindNotConfigured:
		return "provider not configured"
	default:
		return "provider unavailable"
	}
}

// Error is returned by every Provider in this package. Content carries the
// raw model output for invalid or truncated responses.
type Error struct {
	Kind       Kind
	RetryAfter time.Duration
	Content    json.RawMessage
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "LLM " + e.Kind.String()
	}
	return fmt.Sprintf("LLM %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func invalidResponse(raw json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidResponse, Content: raw, Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind is shorthand for KindOf(err) == kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
