package llm

import (
	"context"
	"encoding/json"
	"sync"
)

type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider answers from a queue of scripted responses. Once the queue
// is drained it replays the canned response if one was set, and otherwise
// reports itself unavailable. Every request is recorded.
type MockProvider struct {
	mu     sync.Mutex
	queue  []MockResponse
	canned *MockResponse
	Calls  []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewCannedProvider returns a provider that answers every request with
// content. It backs LLM_PROVIDER=mock for local development.
func NewCannedProvider(content json.RawMessage) *MockProvider {
	return &MockProvider{canned: &MockResponse{Content: content}}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	next, ok := m.next()
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(KindUnavailable, nil)
	}
	if next.Err != nil {
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) next() (MockResponse, bool) {
	if len(m.queue) > 0 {
		resp := m.queue[0]
		m.queue = m.queue[1:]
		return resp, true
	}
	if m.canned != nil {
		return *m.canned, true
	}
	return MockResponse{}, false
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
