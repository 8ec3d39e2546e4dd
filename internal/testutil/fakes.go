package testutil

import (
	"context"
	"fmt"
)

// FakeEmbedder returns canned vectors by exact text match.
// Embedding a text with no canned vector is an error.
type FakeEmbedder struct {
	Vectors map[string][]float32
	Err     error

	// Calls counts Embed invocations.
	Calls int
}

// Embed returns the canned vector for text.
func (f *FakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if v, ok := f.Vectors[text]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no canned vector for %q", text)
}

// EmbedBatch returns canned vectors for each text.
func (f *FakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := f.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
