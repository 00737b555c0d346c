package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
)

func TestSummarizeChunk_Scenarios(t *testing.T) {
	chunk := docModel.TextChunk{
		Text:       "Photosynthesis converts light into energy. Plants do this in chloroplasts.",
		PageNumber: 3,
	}

	tests := []struct {
		name        string
		onComplete  func(ctx context.Context, systemPrompt string, userPrompt string, jsonMode bool) (string, error)
		wantSummary string
	}{
		{
			name: "Valid_JSON",
			onComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
				return `{"summary": "Light becomes energy.", "doodle_concept": "sun and leaf"}`, nil
			},
			wantSummary: "Light becomes energy.",
		},
		{
			name: "Malformed_JSON_Keeps_Raw",
			onComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
				return "Here is the summary: plants eat light.", nil
			},
			wantSummary: "Here is the summary: plants eat light.",
		},
		{
			name: "Provider_Error_Falls_Back",
			onComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
				return "", errors.New("provider down")
			},
			wantSummary: "**Key idea:** Photosynthesis converts light into energy.",
		},
		{
			name: "Empty_Response_Falls_Back",
			onComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
				return "   ", nil
			},
			wantSummary: "**Key idea:** Photosynthesis converts light into energy.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{OnComplete: tt.onComplete}
			s := NewSummarizer(provider)

			result := s.SummarizeChunk(context.Background(), chunk)

			if result.Summary != tt.wantSummary {
				t.Errorf("Summary got %q, want %q", result.Summary, tt.wantSummary)
			}
			if result.PageNumber != 3 {
				t.Errorf("PageNumber got %d, want 3", result.PageNumber)
			}
			if result.DoodleURL != nil {
				t.Error("DoodleURL must stay nil until the doodle pass")
			}
		})
	}
}

func TestFallbackSummary_NoSentenceBoundary(t *testing.T) {
	long := strings.Repeat("x", 400)
	got := fallbackSummary(long)

	want := "**Key idea:** " + long[:180]
	if got != want {
		t.Errorf("Fallback without a sentence boundary should cut at 180 chars, got %d chars", len(got))
	}
}

func TestFallbackSummary_CutsOnRuneBoundary(t *testing.T) {
	// one ASCII byte up front puts the 180-byte mark inside a 2-byte rune
	text := "a" + strings.Repeat("é", 200)
	got := fallbackSummary(text)

	if !utf8.ValidString(got) {
		t.Fatalf("Fallback emitted invalid UTF-8: %q", got)
	}
	body := strings.TrimPrefix(got, "**Key idea:** ")
	if body == got {
		t.Fatalf("Fallback lost its prefix: %q", got)
	}
	if len(body) >= len(text) {
		t.Error("Long text without a sentence boundary was not cut")
	}
	for _, r := range body {
		if r != 'a' && r != 'é' {
			t.Fatalf("Cut mangled a rune into %q", r)
		}
	}
}

func TestSummarizeAll_PreservesOrder(t *testing.T) {
	chunks := make([]docModel.TextChunk, 20)
	for i := range chunks {
		chunks[i] = docModel.TextChunk{Text: fmt.Sprintf("chunk %d body", i), PageNumber: i + 1}
	}

	var inFlight int32
	provider := &mockProvider{
		OnComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
			atomic.AddInt32(&inFlight, 1)
			defer atomic.AddInt32(&inFlight, -1)
			// echo the chunk index back so slot order is observable
			return fmt.Sprintf(`{"summary": "summary of %s"}`, strings.TrimSpace(strings.TrimPrefix(u[strings.Index(u, "Text: "):], "Text: "))), nil
		},
	}

	s := NewSummarizer(provider)
	summaries := s.SummarizeAll(context.Background(), chunks)

	if len(summaries) != len(chunks) {
		t.Fatalf("Got %d summaries for %d chunks", len(summaries), len(chunks))
	}
	for i, summary := range summaries {
		want := fmt.Sprintf("summary of chunk %d body", i)
		if summary.Summary != want {
			t.Errorf("Slot %d got %q, want %q", i, summary.Summary, want)
		}
		if summary.PageNumber != i+1 {
			t.Errorf("Slot %d page got %d, want %d", i, summary.PageNumber, i+1)
		}
	}
}
