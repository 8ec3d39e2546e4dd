package llm

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// OpenRouterBaseURL is the base URL for OpenRouter's OpenAI-compatible API.
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouterDefaultModel is the default model for OpenRouter.
	OpenRouterDefaultModel = "anthropic/claude-3.5-haiku"
)

// OpenRouterModels lists the available models via OpenRouter.
var OpenRouterModels = []string{
	"anthropic/claude-3.5-haiku",
	"openai/gpt-4o-mini",
	"meta-llama/llama-3-70b-instruct",
	"mistralai/mistral-large",
}

// OpenRouterProvider implements Provider via OpenRouter's OpenAI-compatible
// endpoint.
type OpenRouterProvider struct {
	client openAIClient
	model  string
}

// openRouterTransport adds the attribution headers OpenRouter requires.
type openRouterTransport struct {
	base http.RoundTripper
}

func (t *openRouterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", "https://github.com/asteroid-belt/skillpath")
	req.Header.Set("X-Title", "Skillpath")
	return t.base.RoundTrip(req)
}

// NewOpenRouter creates an OpenRouter provider.
func NewOpenRouter(apiKey, model string) (*OpenRouterProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenRouter API key is required")
	}
	if model == "" {
		model = OpenRouterDefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = OpenRouterBaseURL
	cfg.HTTPClient = &http.Client{
		Transport: &openRouterTransport{base: http.DefaultTransport},
	}

	return &OpenRouterProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// NewOpenRouterWithClient creates an OpenRouter provider with a custom
// client, for testing.
func NewOpenRouterWithClient(client openAIClient, model string) *OpenRouterProvider {
	if model == "" {
		model = OpenRouterDefaultModel
	}
	return &OpenRouterProvider{client: client, model: model}
}

// ChatSync sends messages and waits for the complete response.
func (p *OpenRouterProvider) ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error) {
	return chatCompletionSync(ctx, p.client, p.model, messages, opts)
}

// Name returns the provider name.
func (p *OpenRouterProvider) Name() string {
	return string(ProviderOpenRouter)
}

// Models returns available model IDs for this provider.
func (p *OpenRouterProvider) Models() []string {
	return OpenRouterModels
}

// DefaultModel returns the default model for this provider.
func (p *OpenRouterProvider) DefaultModel() string {
	return p.model
}
