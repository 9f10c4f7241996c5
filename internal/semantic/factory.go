package semantic

import (
	"fmt"
	"os"
	"time"
)

// ClientOptions carries the resolved provider settings used to build a
// client. Zero values fall back to provider defaults.
type ClientOptions struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewClient builds a provider client from resolved options.
func NewClient(opts ClientOptions) (Client, error) {
	switch opts.Provider {
	case ProviderOpenAI:
		return NewOpenAIClientWithConfig(OpenAIConfig{
			APIKey:  opts.APIKey,
			BaseURL: opts.BaseURL,
			Model:   opts.Model,
			Timeout: opts.Timeout,
		}), nil
	case ProviderGemini:
		return NewGeminiClient(GeminiConfig{
			APIKey:  opts.APIKey,
			Model:   opts.Model,
			Timeout: opts.Timeout,
		})
	}
	return nil, fmt.Errorf("unknown provider %q", opts.Provider)
}

// DetectProvider resolves a provider from environment variables when the
// config file does not name one. Priority: OPENAI_API_KEY, GEMINI_API_KEY.
func DetectProvider() (ClientOptions, error) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return ClientOptions{Provider: ProviderOpenAI, APIKey: key}, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return ClientOptions{Provider: ProviderGemini, APIKey: key}, nil
	}
	return ClientOptions{}, fmt.Errorf("no API key found; set OPENAI_API_KEY or GEMINI_API_KEY")
}
