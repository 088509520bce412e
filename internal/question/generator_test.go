package question

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
	"github.com/thesrcielos/exambuddy/internal/llm"
)

const validQuestion = `{
	"question": "Which principle requires expenses to be recorded in the period they help generate revenue?",
	"choices": ["Matching principle", "Going concern", "Materiality", "Conservatism"],
	"answer": "Matching principle",
	"explanation": "The matching principle pairs expenses with the revenues they produce."
}`

func TestGenerator_HappyPath(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validQuestion)})
	gen := NewGenerator(provider, time.Second)

	q, err := gen.Generate(context.Background(), GenerateRequest{Topic: "Financial Accounting", Subject: "CPA Exam"})
	require.NoError(t, err)
	assert.Len(t, q.Choices, 4)
	assert.Contains(t, q.Choices, q.Answer)

	require.Len(t, provider.Calls, 1)
	call := provider.Calls[0]
	assert.Equal(t, schemaName, call.Schema.Name)
	assert.Contains(t, call.Messages[0].Content, "Financial Accounting")
	assert.Contains(t, call.Messages[0].Content, "CPA Exam")
}

func TestGenerator_TopicRequired(t *testing.T) {
	provider := llm.NewMockProvider()
	gen := NewGenerator(provider, time.Second)

	_, err := gen.Generate(context.Background(), GenerateRequest{Topic: "   "})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
	assert.Equal(t, 0, provider.CallCount())
}

func TestGenerator_MalformedOutput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		details string
	}{
		{
			name:    "three choices",
			content: `{"question":"Q?","choices":["a","b","c"],"answer":"a","explanation":"e"}`,
			details: "schema validation failed",
		},
		{
			name:    "not json",
			content: `The answer is B`,
			details: "invalid JSON",
		},
		{
			name:    "answer not among choices",
			content: `{"question":"Q?","choices":["a","b","c","d"],"answer":"e","explanation":"x"}`,
			details: "not one of the choices",
		},
		{
			name:    "duplicate choices",
			content: `{"question":"Q?","choices":["a","a","c","d"],"answer":"a","explanation":"x"}`,
			details: "distinct",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			gen := NewGenerator(provider, time.Second)

			_, err := gen.Generate(context.Background(), GenerateRequest{Topic: "Tax"})
			require.Error(t, err)

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusInternalServerError, appErr.Code)
			assert.Equal(t, "failed to generate question", appErr.Message)
			assert.Contains(t, appErr.Details, tt.details)
		})
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestGenerator_Timeout(t *testing.T) {
	gen := NewGenerator(slowProvider{}, 20*time.Millisecond)

	_, err := gen.Generate(context.Background(), GenerateRequest{Topic: "Ethics"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "question generation timed out", appErr.Message)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGenerator_ClientCancellation(t *testing.T) {
	gen := NewGenerator(slowProvider{}, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, GenerateRequest{Topic: "Ethics"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuestionSchema(t *testing.T) {
	def := questionSchema.Definition
	assert.NotContains(t, def, "$schema")
	assert.Equal(t, "object", def["type"])
	assert.Equal(t, false, def["additionalProperties"])
	assert.ElementsMatch(t, []any{"question", "choices", "answer", "explanation"}, def["required"])

	props := def["properties"].(map[string]any)
	choices := props["choices"].(map[string]any)
	assert.EqualValues(t, 4, choices["minItems"])
	assert.EqualValues(t, 4, choices["maxItems"])
}
