package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thesrcielos/exambuddy/internal/stats"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the Stats API on behalf of one user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetStats(ctx context.Context) (stats.StatsMap, error) {
	var out stats.StatsMap
	if err := c.do(ctx, http.MethodGet, "/api/user-stats", nil, &out); err != nil {
		return nil, err
	}
	return validStats(out)
}

func (c *Client) RecordAnswer(ctx context.Context, topic string, correct bool) (stats.StatsMap, error) {
	body := stats.AnswerRequest{Topic: topic, Correct: &correct}
	var out stats.StatsMap
	if err := c.do(ctx, http.MethodPost, "/api/user-stats", body, &out); err != nil {
		return nil, err
	}
	return validStats(out)
}

func (c *Client) ResetStats(ctx context.Context) error {
	var out stats.ResetResponse
	if err := c.do(ctx, http.MethodPost, "/api/user-stats/reset", nil, &out); err != nil {
		return err
	}
	if out.Status != "reset" {
		return fmt.Errorf("unexpected reset status %q", out.Status)
	}
	return nil
}

func (c *Client) Dashboard(ctx context.Context, topics []string) (*stats.Dashboard, error) {
	path := "/api/user-stats/dashboard"
	if len(topics) > 0 {
		path += "?topics=" + url.QueryEscape(strings.Join(topics, ","))
	}
	var out stats.Dashboard
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}
	return apiErr
}

// validStats rejects mappings whose counters break total == correct + incorrect.
func validStats(m stats.StatsMap) (stats.StatsMap, error) {
	if m == nil {
		return stats.StatsMap{}, nil
	}
	for topic, c := range m {
		if c.Total < 0 || c.Correct < 0 || c.Incorrect < 0 || c.Total != c.Correct+c.Incorrect {
			return nil, fmt.Errorf("malformed counters for topic %q: %+v", topic, c)
		}
	}
	return m, nil
}
