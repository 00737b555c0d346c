package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/akolanti/DoodleAPI/internal/llm"
	"github.com/akolanti/DoodleAPI/internal/metrics"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

// Doodler runs the throttled image pass over a job's section summaries. The
// pacing is a token bucket owned by the Doodler, never package state, so tests
// inject an unthrottled limiter.
type Doodler struct {
	provider       llm.Provider
	limiter        *rate.Limiter
	maxPerDocument int
	logger         *logger_i.Logger
}

func NewDoodler(provider llm.Provider, maxPerDocument int, perMinute int, safetyMargin time.Duration) *Doodler {
	return NewDoodlerWithLimiter(provider, maxPerDocument, rate.NewLimiter(rate.Every(callInterval(perMinute, safetyMargin)), 1))
}

func NewDoodlerWithLimiter(provider llm.Provider, maxPerDocument int, limiter *rate.Limiter) *Doodler {
	return &Doodler{
		provider:       provider,
		limiter:        limiter,
		maxPerDocument: maxPerDocument,
		logger:         logger_i.NewLogger("Doodler"),
	}
}

// callInterval spaces consecutive image calls to stay under the provider's
// per-minute quota, with safety margin on top.
func callInterval(perMinute int, safetyMargin time.Duration) time.Duration {
	if perMinute < 1 {
		perMinute = 1
	}
	ceilingMs := (60000 + perMinute - 1) / perMinute
	return time.Duration(ceilingMs)*time.Millisecond + safetyMargin
}

// Illustrate populates DoodleURL on an evenly spaced subset of the summaries,
// sequentially and paced. The bucket starts full, so the first call is not
// delayed. A failed image call leaves that summary's doodle nil and moves on.
func (d *Doodler) Illustrate(ctx context.Context, summaries []docModel.SectionSummary) {
	if d.maxPerDocument <= 0 || len(summaries) == 0 {
		return
	}

	selected := d.maxPerDocument
	if len(summaries) < selected {
		selected = len(summaries)
	}

	for i := 0; i < selected; i++ {
		idx := i * len(summaries) / selected
		if idx > len(summaries)-1 {
			idx = len(summaries) - 1
		}

		if err := d.limiter.Wait(ctx); err != nil {
			d.logger.Warn("Doodle pass cancelled", "error", err)
			return
		}

		url, err := d.provider.CompleteImage(ctx, DoodlePrompt(summaries[idx].Summary))
		if err != nil {
			d.logger.Warn("Doodle generation skipped", "page", summaries[idx].PageNumber, "error", err)
			continue
		}
		if url == "" {
			continue
		}
		summaries[idx].DoodleURL = &url
		metrics.IncrementDoodlesGenerated()
	}
}

// DoodlePrompt wraps a concept in the house doodle style.
func DoodlePrompt(concept string) string {
	return fmt.Sprintf(`Ultra-minimal stick-figure style doodle for: "%s".
Rules:
- Background: fully transparent.
- Lines: 2-8 total strokes, thick black pen, no shading, no gradients.
- Shapes: simple outlines only; no textures, no details.
- Composition: icon-like, centered, lots of empty space.
- Text: none.
- Colors: strictly black lines; optionally 1 tiny pale-yellow highlight only if essential.
- Purpose: aid quick understanding, not realism.`, concept)
}
