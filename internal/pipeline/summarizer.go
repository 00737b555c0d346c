package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/akolanti/DoodleAPI/internal/llm"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

const fallbackScanWindow = 180

// completionResult is the two-arm parse of a summarization completion:
// Parsed carries the structured fields, otherwise Raw holds whatever text the
// model produced. Callers must handle both arms; malformed JSON is an
// expected case, not an exception path.
type completionResult struct {
	Parsed        bool
	Summary       string
	DoodleConcept string
	Raw           string
}

func parseCompletion(content string) completionResult {
	var payload struct {
		Summary       string `json:"summary"`
		DoodleConcept string `json:"doodle_concept"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err == nil && strings.TrimSpace(payload.Summary) != "" {
		return completionResult{
			Parsed:        true,
			Summary:       strings.TrimSpace(payload.Summary),
			DoodleConcept: strings.TrimSpace(payload.DoodleConcept),
		}
	}
	return completionResult{Raw: strings.TrimSpace(content)}
}

type Summarizer struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func NewSummarizer(provider llm.Provider) *Summarizer {
	return &Summarizer{
		provider: provider,
		logger:   logger_i.NewLogger("Summarizer"),
	}
}

// SummarizeChunk turns one chunk into one section summary. It never fails:
// a broken completion degrades to a deterministic summary built from the
// chunk's opening sentence. Doodle generation is deferred to the throttled
// pass, so DoodleURL is always nil here.
func (s *Summarizer) SummarizeChunk(ctx context.Context, chunk docModel.TextChunk) docModel.SectionSummary {
	userPrompt := fmt.Sprintf(
		"Analyze the text and output ONLY JSON with fields {\"summary\": string, \"doodle_concept\": string}.\nText: %s",
		chunk.Text,
	)

	content, err := s.provider.Complete(ctx, config.SummarizerSystemPrompt, userPrompt, true)
	if err != nil || strings.TrimSpace(content) == "" {
		if err != nil {
			s.logger.Warn("Completion failed for chunk, using fallback", "page", chunk.PageNumber, "error", err)
		}
		return docModel.SectionSummary{
			Summary:    fallbackSummary(chunk.Text),
			PageNumber: chunk.PageNumber,
		}
	}

	result := parseCompletion(content)
	if result.Parsed {
		return docModel.SectionSummary{
			Summary:    result.Summary,
			PageNumber: chunk.PageNumber,
		}
	}
	// unparseable arm: the raw text still reads as a summary
	return docModel.SectionSummary{
		Summary:    result.Raw,
		PageNumber: chunk.PageNumber,
	}
}

// SummarizeAll fans the chunks out concurrently with a bounded in-flight cap.
// Results land in their source slot, so page order is preserved regardless of
// completion order.
func (s *Summarizer) SummarizeAll(ctx context.Context, chunks []docModel.TextChunk) []docModel.SectionSummary {
	summaries := make([]docModel.SectionSummary, len(chunks))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(config.SummaryConcurrency)
	for i, chunk := range chunks {
		group.Go(func() error {
			summaries[i] = s.SummarizeChunk(groupCtx, chunk)
			return nil
		})
	}
	_ = group.Wait() //SummarizeChunk never errors
	return summaries
}

// fallbackSummary derives a degraded summary from the chunk's first sentence,
// or its first ~180 characters when no sentence boundary shows up in that span.
func fallbackSummary(text string) string {
	text = strings.TrimSpace(text)
	window := text
	if len(window) > fallbackScanWindow {
		// back off to a rune start; a byte cut can split a multi-byte rune
		cut := fallbackScanWindow
		for cut > 0 && !utf8.RuneStart(window[cut]) {
			cut--
		}
		window = window[:cut]
	}
	if idx := strings.IndexAny(window, ".!?"); idx >= 0 {
		window = text[:idx+1]
	}
	return "**Key idea:** " + strings.TrimSpace(window)
}
