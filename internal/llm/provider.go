package llm

import (
	"context"

	"github.com/psellars/fnolgate/internal/model"
)

// Provider defines the interface for generative-text providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a completion for the given request
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a text completion.
type CompletionRequest struct {
	// System is the system/instruction preamble (optional)
	System string

	// Prompt is the user-facing prompt text
	Prompt string

	// Model is the specific model to use (provider-specific, optional)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling randomness; extraction runs at 0
	Temperature float32
}

// CompletionResponse contains the provider's output.
type CompletionResponse struct {
	// Text is the raw completion text
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// MaxRetries bounds transient-failure retries
	MaxRetries int

	// Temperature for sampling
	Temperature float32
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "", // Disabled by default
		Model:      "",
		Timeout:    30,
		MaxTokens:  2000,
		MaxRetries: 3,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:    modelConfig.Provider,
		Model:       modelConfig.Model,
		APIKey:      modelConfig.APIKey,
		BaseURL:     modelConfig.BaseURL,
		Timeout:     modelConfig.Timeout,
		MaxTokens:   modelConfig.MaxTokens,
		MaxRetries:  modelConfig.MaxRetries,
		Temperature: modelConfig.Temperature,
	}
}
