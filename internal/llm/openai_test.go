package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOpenAIClient implements openAIClient for testing.
type mockOpenAIClient struct {
	response    openai.ChatCompletionResponse
	err         error
	capturedReq openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.capturedReq = req
	return m.response, m.err
}

func completionResponse(model, content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Model: model,
		Choices: []openai.ChatCompletionChoice{
			{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
				FinishReason: openai.FinishReasonStop,
			},
		},
		Usage: openai.Usage{PromptTokens: 12, CompletionTokens: 7, TotalTokens: 19},
	}
}

func TestNewOpenAI_EmptyAPIKey(t *testing.T) {
	_, err := NewOpenAI("", "")
	assert.Error(t, err)
}

func TestNewOpenAI_InvalidModel(t *testing.T) {
	_, err := NewOpenAI("test-api-key", "gpt-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid OpenAI model")
}

func TestOpenAI_ChatSync(t *testing.T) {
	mockClient := &mockOpenAIClient{response: completionResponse(OpenAIDefaultModel, "Here is your plan.")}
	provider := NewOpenAIWithClient(mockClient, "")

	resp, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Plan a course.")}, ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Here is your plan.", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 19, resp.Usage.TotalTokens)
	assert.Equal(t, OpenAIDefaultModel, mockClient.capturedReq.Model)
	assert.Equal(t, OpenAIDefaultMaxTokens, mockClient.capturedReq.MaxTokens)
}

func TestOpenAI_ChatSync_NoChoices(t *testing.T) {
	provider := NewOpenAIWithClient(&mockOpenAIClient{response: openai.ChatCompletionResponse{}}, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hi")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAI_ChatSync_Error(t *testing.T) {
	provider := NewOpenAIWithClient(&mockOpenAIClient{err: errors.New("rate limited")}, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hi")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create completion")
}

func TestOpenRouter_ChatSync_UsesConfiguredModel(t *testing.T) {
	mockClient := &mockOpenAIClient{response: completionResponse(OpenRouterDefaultModel, "ok")}
	provider := NewOpenRouterWithClient(mockClient, "")

	resp, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hi")}, ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, OpenRouterDefaultModel, mockClient.capturedReq.Model)
	assert.Equal(t, "openrouter", provider.Name())
}

func TestConvertToOpenAIMessages(t *testing.T) {
	msgs := convertToOpenAIMessages([]Message{
		NewSystemMessage("system"),
		NewUserMessage("user"),
		NewAssistantMessage("assistant"),
	})
	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[2].Role)
}
