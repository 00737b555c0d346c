package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
)

func TestAssembler_UsesCompletion(t *testing.T) {
	provider := &mockProvider{
		OnComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
			return "  # Biology Notes\n\ncontent here  ", nil
		},
	}
	a := NewAssembler(provider)

	got := a.BuildNotebook(context.Background(), sectionSummaries(3))
	if got != "# Biology Notes\n\ncontent here" {
		t.Errorf("Notebook got %q", got)
	}
}

func TestAssembler_Fallbacks(t *testing.T) {
	summaries := []docModel.SectionSummary{
		{Summary: "first point", PageNumber: 1},
		{Summary: "second point", PageNumber: 2},
	}
	combined := "first point\n\nsecond point"

	tests := []struct {
		name  string
		build func(a *Assembler) string
		want  string
	}{
		{
			name:  "Notebook",
			build: func(a *Assembler) string { return a.BuildNotebook(context.Background(), summaries) },
			want:  "# Notes\n\n" + combined,
		},
		{
			name:  "TotalSummary",
			build: func(a *Assembler) string { return a.BuildTotalSummary(context.Background(), summaries) },
			want:  "## Total Summary\n\n" + combined,
		},
		{
			name:  "MiniExercise",
			build: func(a *Assembler) string { return a.BuildMiniExercise(context.Background(), summaries) },
			want:  "# Mini-Exercise: Check Your Knowledge!\n\nQ1: What is one key idea from these notes?\n---\nA1: <your answer>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_OnError", func(t *testing.T) {
			provider := &mockProvider{
				OnComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
					return "", errors.New("provider down")
				},
			}
			if got := tt.build(NewAssembler(provider)); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
		t.Run(tt.name+"_OnEmpty", func(t *testing.T) {
			provider := &mockProvider{
				OnComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
					return "\n\t ", nil
				},
			}
			if got := tt.build(NewAssembler(provider)); got != tt.want {
				t.Errorf("Got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembler_PromptsCarryAllSummaries(t *testing.T) {
	var captured string
	provider := &mockProvider{
		OnComplete: func(ctx context.Context, s string, u string, j bool) (string, error) {
			captured = u
			return "ok", nil
		},
	}
	a := NewAssembler(provider)

	summaries := sectionSummaries(4)
	a.BuildTotalSummary(context.Background(), summaries)

	for _, s := range summaries {
		if !strings.Contains(captured, s.Summary) {
			t.Errorf("Prompt is missing section %q", s.Summary)
		}
	}
}
