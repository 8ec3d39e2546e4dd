package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAnthropicClient implements anthropicClient for testing.
type mockAnthropicClient struct {
	messageResponse *anthropic.Message
	messageErr      error
	capturedParams  anthropic.MessageNewParams
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.capturedParams = params
	if m.messageErr != nil {
		return nil, m.messageErr
	}
	return m.messageResponse, nil
}

func textMessage(model, text string, in, out int64) *anthropic.Message {
	return &anthropic.Message{
		Model:      anthropic.Model(model),
		StopReason: "end_turn",
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
		Usage: anthropic.Usage{InputTokens: in, OutputTokens: out},
	}
}

func TestNewAnthropic_EmptyAPIKey(t *testing.T) {
	_, err := NewAnthropic("", "")
	require.Error(t, err)
	assert.Equal(t, "API key is required", err.Error())
}

func TestNewAnthropic_InvalidModel(t *testing.T) {
	_, err := NewAnthropic("test-api-key", "invalid-model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Anthropic model")
}

func TestNewAnthropic_DefaultModel(t *testing.T) {
	provider, err := NewAnthropic("test-api-key", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAnthropicModel, provider.model)
	assert.Equal(t, "anthropic", provider.Name())
}

func TestAnthropic_ChatSync(t *testing.T) {
	mockClient := &mockAnthropicClient{
		messageResponse: textMessage(DefaultAnthropicModel, "Hello! How can I help you?", 10, 8),
	}
	provider := NewAnthropicWithClient(mockClient, "")

	resp, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hello!")}, ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you?", resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, 18, resp.Usage.TotalTokens)
}

func TestAnthropic_ChatSync_Error(t *testing.T) {
	provider := NewAnthropicWithClient(&mockAnthropicClient{messageErr: errors.New("API error")}, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hello!")}, ChatOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic chat")
}

func TestAnthropic_ChatSync_SystemMessageSeparated(t *testing.T) {
	mockClient := &mockAnthropicClient{
		messageResponse: textMessage(DefaultAnthropicModel, "Response", 0, 0),
	}
	provider := NewAnthropicWithClient(mockClient, "")

	messages := []Message{
		NewSystemMessage("You are a curriculum planner."),
		NewUserMessage("Plan a course."),
		NewAssistantMessage("Sure."),
	}
	_, err := provider.ChatSync(context.Background(), messages, ChatOptions{})
	require.NoError(t, err)

	require.Len(t, mockClient.capturedParams.System, 1)
	assert.Equal(t, "You are a curriculum planner.", mockClient.capturedParams.System[0].Text)
	assert.Len(t, mockClient.capturedParams.Messages, 2)
}

func TestAnthropic_ChatSync_ModelOverride(t *testing.T) {
	mockClient := &mockAnthropicClient{
		messageResponse: textMessage("claude-3-5-sonnet-20241022", "Response", 0, 0),
	}
	provider := NewAnthropicWithClient(mockClient, "")

	_, err := provider.ChatSync(context.Background(), []Message{NewUserMessage("Hi")}, ChatOptions{
		Model: "claude-3-5-sonnet-20241022",
	})
	require.NoError(t, err)
	assert.Equal(t, anthropic.Model("claude-3-5-sonnet-20241022"), mockClient.capturedParams.Model)
}
