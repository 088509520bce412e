package llm

import (
	"context"
	"fmt"
	"log"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → base. A provider whose API key is missing is
// still returned: it fails each request with KindNotConfigured so the rest
// of the service keeps running.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.Provider == "mock" {
		if len(cfg.MockContent) == 0 {
			return nil, fmt.Errorf("mock LLM provider needs canned content")
		}
		return WithLogging(NewCannedProvider(cfg.MockContent), "mock"), nil
	}

	keyVar, key, ok := cfg.apiKey()
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if key == "" {
		log.Printf("[WARN] %s is not set; question generation will fail until it is", keyVar)
		return WithLogging(&unconfiguredProvider{keyVar: keyVar}, cfg.Provider), nil
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider), cfg.Retry), nil
}

// apiKey returns the env var name and value of the key the selected
// provider needs. ok is false for an unknown provider.
func (cfg Config) apiKey() (keyVar, key string, ok bool) {
	switch cfg.Provider {
	case "openai":
		return "OPENAI_API_KEY", cfg.OpenAI.APIKey, true
	case "anthropic":
		return "ANTHROPIC_API_KEY", cfg.Anthropic.APIKey, true
	case "gemini":
		return "GEMINI_API_KEY", cfg.Gemini.APIKey, true
	}
	return "", "", false
}

type unconfiguredProvider struct {
	keyVar string
}

func (p *unconfiguredProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, newError(KindNotConfigured, fmt.Errorf("%s is not set", p.keyVar))
}

func (p *unconfiguredProvider) ModelID() string {
	return "unconfigured"
}

// resolveModel maps a friendly model name to a provider model ID, passing
// unknown names through unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
