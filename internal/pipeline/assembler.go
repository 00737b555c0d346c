package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/akolanti/DoodleAPI/internal/llm"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

// Assembler builds the three top-level artifacts from the section summaries.
// Each builder degrades to a deterministic template when the completion comes
// back unusable - the job completes either way.
type Assembler struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func NewAssembler(provider llm.Provider) *Assembler {
	return &Assembler{
		provider: provider,
		logger:   logger_i.NewLogger("Assembler"),
	}
}

func (a *Assembler) BuildNotebook(ctx context.Context, summaries []docModel.SectionSummary) string {
	combined := joinSummaries(summaries)
	userPrompt := fmt.Sprintf(
		"Create a single markdown notes page based on the following summaries.\nInclude 3-5 doodle placeholders in the format [DOODLE: description].\n---\n%s\n---",
		combined,
	)
	return a.buildOrFallback(ctx, "notebook", config.NotebookSystemPrompt, userPrompt, "# Notes\n\n"+combined)
}

func (a *Assembler) BuildTotalSummary(ctx context.Context, summaries []docModel.SectionSummary) string {
	combined := joinSummaries(summaries)
	userPrompt := fmt.Sprintf(
		"Create a final, consolidated summary page (<=120 words) with a fun title and a final thought.\n---\n%s\n---",
		combined,
	)
	return a.buildOrFallback(ctx, "total summary", config.TotalSystemPrompt, userPrompt, "## Total Summary\n\n"+combined)
}

func (a *Assembler) BuildMiniExercise(ctx context.Context, summaries []docModel.SectionSummary) string {
	combined := joinSummaries(summaries)
	userPrompt := fmt.Sprintf(
		"Create a 3-4 question mini-exercise. Use the exact format with Q1, --- separator, and A1 as specified.\n---\n%s\n---",
		combined,
	)
	fallback := "# Mini-Exercise: Check Your Knowledge!\n\nQ1: What is one key idea from these notes?\n---\nA1: <your answer>"
	return a.buildOrFallback(ctx, "mini-exercise", config.ExerciseSystemPrompt, userPrompt, fallback)
}

func (a *Assembler) buildOrFallback(ctx context.Context, artifact string, systemPrompt string, userPrompt string, fallback string) string {
	content, err := a.provider.Complete(ctx, systemPrompt, userPrompt, false)
	if err != nil {
		a.logger.Warn("Assembly call failed, using fallback", "artifact", artifact, "error", err)
		return fallback
	}
	if strings.TrimSpace(content) == "" {
		a.logger.Warn("Assembly call returned nothing, using fallback", "artifact", artifact)
		return fallback
	}
	return strings.TrimSpace(content)
}

func joinSummaries(summaries []docModel.SectionSummary) string {
	parts := make([]string, 0, len(summaries))
	for _, s := range summaries {
		parts = append(parts, s.Summary)
	}
	return strings.Join(parts, "\n\n")
}
