package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
	"github.com/thesrcielos/exambuddy/internal/llm"
)

const (
	maxTokens   = 1024
	temperature = 0.7
)

type Generator struct {
	provider llm.Provider
	timeout  time.Duration
}

func NewGenerator(provider llm.Provider, timeout time.Duration) *Generator {
	return &Generator{provider: provider, timeout: timeout}
}

// Generate asks the provider for one question on req.Topic. The call is
// bounded by the generator timeout and by ctx.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Question, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Topic == "" {
		return nil, apperrors.Validation("topic is required")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "generate-question")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildPrompt(req)}},
		Schema:      questionSchema,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Upstream("question generation timed out", err)
		}
		return nil, apperrors.Upstream("failed to generate question", err)
	}

	var q Question
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, apperrors.Upstream("failed to generate question", fmt.Errorf("invalid JSON: %w", err))
	}
	if err := q.Validate(); err != nil {
		return nil, apperrors.Upstream("failed to generate question", err)
	}
	return &q, nil
}

// Validate checks the invariants a schema cannot express.
func (q *Question) Validate() error {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	q.Choices = lo.Map(q.Choices, func(c string, _ int) string { return strings.TrimSpace(c) })

	if q.Question == "" {
		return errors.New("question text is empty")
	}
	if len(q.Choices) != 4 {
		return fmt.Errorf("expected 4 choices, got %d", len(q.Choices))
	}
	if lo.Contains(q.Choices, "") {
		return errors.New("choices must not be empty")
	}
	if len(lo.Uniq(q.Choices)) != len(q.Choices) {
		return errors.New("choices must be distinct")
	}
	if !lo.Contains(q.Choices, q.Answer) {
		return fmt.Errorf("answer %q is not one of the choices", q.Answer)
	}
	return nil
}
