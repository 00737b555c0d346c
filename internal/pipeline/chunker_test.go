package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
)

func wordsPage(pageNumber int, count int, prefix string) docModel.Page {
	words := make([]string, count)
	for i := range words {
		words[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return docModel.Page{PageNumber: pageNumber, Text: strings.Join(words, " ")}
}

func TestChunkPages_SplitsOnWordBoundaries(t *testing.T) {
	pages := []docModel.Page{
		wordsPage(1, 200, "a"),
		wordsPage(2, 110, "b"),
	}

	chunks, err := ChunkPages(pages, 150)
	if err != nil {
		t.Fatalf("ChunkPages failed: %v", err)
	}

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks for 310 words, got %d", len(chunks))
	}

	wantSizes := []int{150, 150, 10}
	total := 0
	for i, chunk := range chunks {
		got := len(strings.Fields(chunk.Text))
		if got != wantSizes[i] {
			t.Errorf("Chunk %d size got %d, want %d", i, got, wantSizes[i])
		}
		total += got
	}
	if total != 310 {
		t.Errorf("Words lost or duplicated: got %d, want 310", total)
	}

	// every word must land exactly once, in order
	allWords := strings.Fields(strings.Join([]string{pages[0].Text, pages[1].Text}, " "))
	chunkedWords := strings.Fields(strings.Join([]string{chunks[0].Text, chunks[1].Text, chunks[2].Text}, " "))
	for i := range allWords {
		if allWords[i] != chunkedWords[i] {
			t.Fatalf("Word order broken at %d: got %s, want %s", i, chunkedWords[i], allWords[i])
		}
	}
}

func TestChunkPages_PageTagging(t *testing.T) {
	pages := []docModel.Page{
		wordsPage(1, 200, "a"),
		wordsPage(2, 110, "b"),
	}

	chunks, err := ChunkPages(pages, 150)
	if err != nil {
		t.Fatalf("ChunkPages failed: %v", err)
	}

	// chunk 0 starts on page 1, chunk 1 starts mid page 1, chunk 2 starts on page 2
	wantPages := []int{1, 1, 2}
	for i, chunk := range chunks {
		if chunk.PageNumber != wantPages[i] {
			t.Errorf("Chunk %d page got %d, want %d", i, chunk.PageNumber, wantPages[i])
		}
	}
}

func TestChunkPages_Deterministic(t *testing.T) {
	pages := []docModel.Page{wordsPage(1, 47, "w"), wordsPage(2, 93, "x")}

	first, err := ChunkPages(pages, 30)
	if err != nil {
		t.Fatalf("ChunkPages failed: %v", err)
	}
	second, err := ChunkPages(pages, 30)
	if err != nil {
		t.Fatalf("ChunkPages failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Chunk %d differs between runs", i)
		}
	}
}

func TestChunkPages_NoContent(t *testing.T) {
	pages := []docModel.Page{
		{PageNumber: 1, Text: "   "},
		{PageNumber: 2, Text: ""},
	}

	_, err := ChunkPages(pages, 150)
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("Expected ErrNoContent, got %v", err)
	}
}
