package docModel

import (
	"context"
	"time"
)

// Page is one extracted page of the uploaded file. Image uploads produce a
// single synthetic page 1.
type Page struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	ImageURL   string `json:"image_url,omitempty"`
}

// TextChunk is the unit of independent summarization, ephemeral to one job run.
// PageNumber is the page that was active when the chunk began accumulating.
type TextChunk struct {
	Text       string
	PageNumber int
}

type SectionSummary struct {
	Summary    string  `json:"summary"`
	DoodleURL  *string `json:"doodle_url"`
	PageNumber int     `json:"page_number"`
}

type UserNote struct {
	PageNumber  int       `json:"page_number"`
	Content     string    `json:"content"`
	CreatedTime time.Time `json:"created_at"`
}

// ResultDocument is the persisted output of a completed job. UserNotes starts
// empty; the note-taking features own it afterwards.
type ResultDocument struct {
	Id               string           `json:"id"`
	OwnerId          string           `json:"owner_id"`
	FileName         string           `json:"file_name"`
	SourcePdfURL     string           `json:"source_pdf_url,omitempty"`
	SourceImageURL   string           `json:"source_image_url,omitempty"`
	Pages            []Page           `json:"pages"`
	SectionSummaries []SectionSummary `json:"section_summaries"`
	NotebookSummary  string           `json:"notebook_summary"`
	TotalSummary     string           `json:"total_summary"`
	MiniExercise     string           `json:"mini_exercise"`
	UserNotes        []UserNote       `json:"user_notes"`
	CreatedTime      time.Time        `json:"created_at"`
}

type DocumentStore interface {
	// SaveDocument persists the result and returns its locator.
	SaveDocument(ctx context.Context, doc ResultDocument) (string, error)
	GetDocument(ctx context.Context, id string) (ResultDocument, bool)
}
