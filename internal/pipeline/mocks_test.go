package pipeline

import (
	"context"
	"sync/atomic"
)

// mockProvider stands in for a completion backend; unset hooks return success
type mockProvider struct {
	OnComplete      func(ctx context.Context, systemPrompt string, userPrompt string, jsonMode bool) (string, error)
	OnCompleteImage func(ctx context.Context, prompt string) (string, error)
	OnExtractText   func(ctx context.Context, image []byte, mimeType string) (string, error)

	CompleteCalls int32
	ImageCalls    int32
}

func (m *mockProvider) Complete(ctx context.Context, systemPrompt string, userPrompt string, jsonMode bool) (string, error) {
	atomic.AddInt32(&m.CompleteCalls, 1)
	if m.OnComplete != nil {
		return m.OnComplete(ctx, systemPrompt, userPrompt, jsonMode)
	}
	return `{"summary": "a summary", "doodle_concept": "a concept"}`, nil
}

func (m *mockProvider) CompleteImage(ctx context.Context, prompt string) (string, error) {
	atomic.AddInt32(&m.ImageCalls, 1)
	if m.OnCompleteImage != nil {
		return m.OnCompleteImage(ctx, prompt)
	}
	return "https://images.example/doodle.png", nil
}

func (m *mockProvider) ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if m.OnExtractText != nil {
		return m.OnExtractText(ctx, image, mimeType)
	}
	return "extracted text", nil
}
