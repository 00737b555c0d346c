package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/DoodleAPI/internal/blob"
	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
	"github.com/akolanti/DoodleAPI/internal/llm"
	"github.com/akolanti/DoodleAPI/internal/metrics"
	"github.com/akolanti/DoodleAPI/internal/pipeline/extract"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

// Service is all the worker sees of the pipeline: run one claimed job to a
// result document and the completed terminal state, or return the fatal error.
// Degradable stages (chunk summaries, doodles, assembly) never surface here.
type Service interface {
	ExecuteJob(ctx context.Context, job jobModel.Job) error
}

type service struct {
	jobs       jobModel.JobStore
	documents  docModel.DocumentStore
	blobs      blob.Store
	extractor  extract.Extractor
	summarizer *Summarizer
	doodler    *Doodler
	assembler  *Assembler
	logger     *logger_i.Logger
}

type ServiceConfig struct {
	JobStore      jobModel.JobStore
	DocumentStore docModel.DocumentStore
	BlobStore     blob.Store
	Extractor     extract.Extractor
	Provider      llm.Provider
	// Doodler is optional; when nil one is built from the configured budget.
	Doodler *Doodler
}

func NewService(cfg ServiceConfig) Service {
	doodler := cfg.Doodler
	if doodler == nil {
		maxPerDocument := config.DoodleMaxPerDocument
		if !config.EnableImageGeneration {
			maxPerDocument = 0
		}
		doodler = NewDoodler(cfg.Provider, maxPerDocument, config.DoodleRatePerMinute, config.DoodleSafetyMargin)
	}
	return &service{
		jobs:       cfg.JobStore,
		documents:  cfg.DocumentStore,
		blobs:      cfg.BlobStore,
		extractor:  cfg.Extractor,
		summarizer: NewSummarizer(cfg.Provider),
		doodler:    doodler,
		assembler:  NewAssembler(cfg.Provider),
		logger:     logger_i.NewLogger("Pipeline"),
	}
}

func (s *service) ExecuteJob(ctx context.Context, job jobModel.Job) error {
	log := s.logger.With("jobId", job.Id, "traceId", job.TraceId)

	s.progress(ctx, job.Id, "Downloading file from storage...")
	data, err := s.blobs.Get(ctx, job.FileKey)
	if err != nil {
		return fmt.Errorf("failed to fetch upload from storage: %w", err)
	}

	s.progress(ctx, job.Id, "Processing file contents...")
	extractStart := time.Now()
	pages, err := s.extractor.ExtractPages(ctx, data, job.FileType, job.FileURL)
	metrics.CaptureStageMetrics("extract", time.Since(extractStart))
	if err != nil {
		return fmt.Errorf("could not extract content from the file: %w", err)
	}
	if len(pages) == 0 {
		return errors.New("could not extract content from the file")
	}

	chunks, err := ChunkPages(pages, config.ChunkSizeWords)
	if err != nil {
		return err
	}
	log.Debug("Chunked document", "pages", len(pages), "chunks", len(chunks))

	s.progress(ctx, job.Id, fmt.Sprintf("Summarizing %d sections...", len(chunks)))
	summarizeStart := time.Now()
	summaries := s.summarizer.SummarizeAll(ctx, chunks)
	metrics.CaptureStageMetrics("summarize", time.Since(summarizeStart))
	if err := ceilingCheck(ctx); err != nil {
		return err
	}

	s.progress(ctx, job.Id, "Sketching doodles...")
	doodleStart := time.Now()
	s.doodler.Illustrate(ctx, summaries)
	metrics.CaptureStageMetrics("doodle", time.Since(doodleStart))
	if err := ceilingCheck(ctx); err != nil {
		return err
	}

	s.progress(ctx, job.Id, "Creating notebook view...")
	notebook := s.assembler.BuildNotebook(ctx, summaries)

	s.progress(ctx, job.Id, "Generating final summary...")
	totalSummary := s.assembler.BuildTotalSummary(ctx, summaries)

	s.progress(ctx, job.Id, "Creating mini-exercise...")
	miniExercise := s.assembler.BuildMiniExercise(ctx, summaries)
	if err := ceilingCheck(ctx); err != nil {
		return err
	}

	doc := docModel.ResultDocument{
		Id:               job.Id,
		OwnerId:          job.OwnerId,
		FileName:         job.FileName,
		Pages:            pages,
		SectionSummaries: summaries,
		NotebookSummary:  notebook,
		TotalSummary:     totalSummary,
		MiniExercise:     miniExercise,
		UserNotes:        []docModel.UserNote{},
		CreatedTime:      time.Now(),
	}
	if job.FileType == "application/pdf" {
		doc.SourcePdfURL = job.FileURL
	} else if strings.HasPrefix(job.FileType, "image/") {
		doc.SourceImageURL = job.FileURL
	}

	locator, err := s.documents.SaveDocument(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to persist result document: %w", err)
	}

	if err := s.jobs.Complete(ctx, job.Id, locator); err != nil {
		return fmt.Errorf("failed to mark job completed: %w", err)
	}
	log.Info("Result document persisted", "locator", locator)
	return nil
}

// ceilingCheck distinguishes the job's execution ceiling expiring from one
// slow provider call. The degradable stages swallow per-call errors, so the
// deadline must be re-checked between stages or a timed-out job would reach
// completed carrying nothing but fallback content.
func ceilingCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("job ran past its execution ceiling: %w", err)
	}
	return nil
}

// progress writes are best effort; a polling client missing one stage text is
// not worth failing the job over.
func (s *service) progress(ctx context.Context, jobId string, message string) {
	if err := s.jobs.UpdateProgress(ctx, jobId, message); err != nil {
		s.logger.Warn("Failed to update progress", "jobId", jobId, "error", err)
	}
}
