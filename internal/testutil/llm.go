package testutil

import (
	"context"

	"github.com/asteroid-belt/skillpath/internal/llm"
)

// FakeChatProvider replays canned responses in order. When Responses run
// out, the last one repeats.
type FakeChatProvider struct {
	Responses []string
	Err       error

	// Requests records every message slice sent.
	Requests [][]llm.Message
}

// ChatSync returns the next canned response.
func (f *FakeChatProvider) ChatSync(ctx context.Context, messages []llm.Message, opts llm.ChatOptions) (*llm.Response, error) {
	f.Requests = append(f.Requests, messages)
	if f.Err != nil {
		return nil, f.Err
	}

	idx := len(f.Requests) - 1
	if idx >= len(f.Responses) {
		idx = len(f.Responses) - 1
	}
	return &llm.Response{
		Content:      f.Responses[idx],
		Model:        "fake",
		FinishReason: "stop",
	}, nil
}

func (f *FakeChatProvider) Name() string         { return "fake" }
func (f *FakeChatProvider) Models() []string     { return []string{"fake"} }
func (f *FakeChatProvider) DefaultModel() string { return "fake" }
