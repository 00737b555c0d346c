package pipeline

import (
	"errors"
	"strings"

	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
)

// ErrNoContent is fatal for a job: a document with zero extractable words has
// nothing to summarize.
var ErrNoContent = errors.New("could not break the document into text sections")

// ChunkPages splits the ordered page texts into chunks of chunkSize words.
// Words are never split; every word lands in exactly one chunk, in order. A
// chunk is tagged with the page that was active when it began accumulating,
// and the final chunk may be shorter than chunkSize.
func ChunkPages(pages []docModel.Page, chunkSize int) ([]docModel.TextChunk, error) {
	var chunks []docModel.TextChunk
	var current strings.Builder
	wordCount := 0

	currentPage := 1
	if len(pages) > 0 {
		currentPage = pages[0].PageNumber
	}

	for _, page := range pages {
		if current.Len() == 0 {
			currentPage = page.PageNumber
		}
		for _, word := range strings.Fields(page.Text) {
			current.WriteString(word)
			current.WriteByte(' ')
			wordCount++
			if wordCount >= chunkSize {
				chunks = append(chunks, docModel.TextChunk{
					Text:       strings.TrimSpace(current.String()),
					PageNumber: currentPage,
				})
				current.Reset()
				wordCount = 0
				currentPage = page.PageNumber
			}
		}
	}

	if remainder := strings.TrimSpace(current.String()); remainder != "" {
		chunks = append(chunks, docModel.TextChunk{
			Text:       remainder,
			PageNumber: currentPage,
		})
	}

	if len(chunks) == 0 {
		return nil, ErrNoContent
	}
	return chunks, nil
}
