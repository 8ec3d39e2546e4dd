package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI model constants.
const (
	OpenAIModelGPT4oMini   = "gpt-4o-mini"
	OpenAIModelGPT4o       = "gpt-4o"
	OpenAIModelGPT4Turbo   = "gpt-4-turbo"
	OpenAIDefaultModel     = OpenAIModelGPT4oMini
	OpenAIDefaultMaxTokens = 4096
)

var openAIModels = []string{
	OpenAIModelGPT4oMini,
	OpenAIModelGPT4o,
	OpenAIModelGPT4Turbo,
}

// openAIClient abstracts the OpenAI client for mocking in tests. The same
// interface backs the OpenRouter provider, which speaks the OpenAI wire
// protocol against a different base URL.
type openAIClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider implements Provider using OpenAI's API.
type OpenAIProvider struct {
	client openAIClient
	model  string
}

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = OpenAIDefaultModel
	}
	if !containsModel(openAIModels, model) {
		return nil, fmt.Errorf("invalid OpenAI model: %s (available: %v)", model, openAIModels)
	}

	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// NewOpenAIWithClient creates an OpenAI provider with a custom client, for
// testing.
func NewOpenAIWithClient(client openAIClient, model string) *OpenAIProvider {
	if model == "" {
		model = OpenAIDefaultModel
	}
	return &OpenAIProvider{client: client, model: model}
}

// ChatSync sends messages and waits for the complete response.
func (p *OpenAIProvider) ChatSync(ctx context.Context, messages []Message, opts ChatOptions) (*Response, error) {
	return chatCompletionSync(ctx, p.client, p.model, messages, opts)
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return string(ProviderOpenAI)
}

// Models returns available model IDs.
func (p *OpenAIProvider) Models() []string {
	return openAIModels
}

// DefaultModel returns the default model.
func (p *OpenAIProvider) DefaultModel() string {
	return OpenAIDefaultModel
}

// chatCompletionSync runs one chat completion against any OpenAI-compatible
// client. Shared by the OpenAI and OpenRouter providers.
func chatCompletionSync(ctx context.Context, client openAIClient, defaultModel string, messages []Message, opts ChatOptions) (*Response, error) {
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = OpenAIDefaultMaxTokens
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    convertToOpenAIMessages(messages),
		MaxTokens:   maxTokens,
		Temperature: float32(opts.Temperature),
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}

	choice := resp.Choices[0]
	return &Response{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// convertToOpenAIMessages converts internal messages to OpenAI format.
func convertToOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}
