package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/DoodleAPI/internal/data/redisStore"
	"github.com/akolanti/DoodleAPI/internal/data/store"
	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func sampleDocument() docModel.ResultDocument {
	doodle := "https://images.example/doodle.png"
	return docModel.ResultDocument{
		Id:       "doc-1",
		OwnerId:  "tester",
		FileName: "bio.pdf",
		Pages: []docModel.Page{
			{PageNumber: 1, Text: "page one text"},
			{PageNumber: 2, Text: "page two text"},
		},
		SectionSummaries: []docModel.SectionSummary{
			{Summary: "first section", DoodleURL: &doodle, PageNumber: 1},
			{Summary: "second section", PageNumber: 2},
		},
		NotebookSummary: "# Notes\n\n[DOODLE: cells]",
		TotalSummary:    "## Total Summary\n\nshort",
		MiniExercise:    "Q1: what?\n---\nA1: that",
		UserNotes:       []docModel.UserNote{},
		CreatedTime:     time.Now(),
	}
}

func TestRedisDocumentStore_Roundtrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	docStore := store.TestDocumentStore(redisStore.NewTestStore(client))

	ctx := context.Background()
	doc := sampleDocument()

	locator, err := docStore.SaveDocument(ctx, doc)
	if err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}
	if !strings.HasPrefix(locator, "documents/") {
		t.Errorf("Locator got %q, want documents/ prefix", locator)
	}

	t.Run("Get By Locator", func(t *testing.T) {
		retrieved, found := docStore.GetDocument(ctx, locator)
		if !found {
			t.Fatal("Document was saved but not found")
		}
		if len(retrieved.SectionSummaries) != 2 {
			t.Fatalf("Got %d section summaries, want 2", len(retrieved.SectionSummaries))
		}
		if retrieved.SectionSummaries[0].DoodleURL == nil {
			t.Error("Doodle URL lost in the roundtrip")
		}
		if retrieved.NotebookSummary != doc.NotebookSummary {
			t.Errorf("Notebook got %q, want %q", retrieved.NotebookSummary, doc.NotebookSummary)
		}
	})

	t.Run("Get By Bare Id", func(t *testing.T) {
		if _, found := docStore.GetDocument(ctx, doc.Id); !found {
			t.Error("Document not found by bare id")
		}
	})

	t.Run("Get Non-Existent Document", func(t *testing.T) {
		if _, found := docStore.GetDocument(ctx, "ghost"); found {
			t.Error("Expected found=false for non-existent document")
		}
	})
}

func TestInMemoryDocumentStore_Roundtrip(t *testing.T) {
	docStore := store.InitInMemoryDocumentStore()
	ctx := context.Background()

	locator, err := docStore.SaveDocument(ctx, sampleDocument())
	if err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	if _, found := docStore.GetDocument(ctx, locator); !found {
		t.Error("Document not found by locator")
	}
	if _, found := docStore.GetDocument(ctx, "doc-1"); !found {
		t.Error("Document not found by bare id")
	}
}
