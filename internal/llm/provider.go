package llm

import "context"

// Provider is the opaque AI capability consumed by the pipeline. Complete
// returns the raw completion text ("" when the model produced nothing usable),
// CompleteImage returns an image reference (URL or data URL), and
// ExtractImageText OCRs an uploaded image.
type Provider interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, jsonMode bool) (string, error)
	CompleteImage(ctx context.Context, prompt string) (string, error)
	ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error)
}
