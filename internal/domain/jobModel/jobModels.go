package jobModel

import (
	"context"
	"time"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job is the durable record tracking one uploaded file through the pipeline.
// Only the worker that claimed the job mutates it after creation.
type Job struct {
	Id              string     `json:"id"`
	OwnerId         string     `json:"owner_id"`
	TraceId         string     `json:"trace_id"`
	FileName        string     `json:"file_name"`
	FileType        string     `json:"file_type"`
	FileKey         string     `json:"file_key"`
	FileURL         string     `json:"file_url,omitempty"`
	Status          JobStatus  `json:"status"`
	ProgressMessage string     `json:"progress_message,omitempty"`
	Error           string     `json:"error,omitempty"`
	ResultLocator   string     `json:"result_locator,omitempty"`
	CreatedTime     time.Time  `json:"created_time"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}

func (j Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

type JobStore interface {
	CreateQueued(ctx context.Context, job Job) error
	GetJob(ctx context.Context, jobId string) (Job, bool)
	// ClaimNextQueued atomically moves the oldest queued job to processing
	// and stamps StartedAt. Two concurrent callers can never claim the same job.
	ClaimNextQueued(ctx context.Context) (Job, bool)
	UpdateProgress(ctx context.Context, jobId string, message string) error
	Complete(ctx context.Context, jobId string, resultLocator string) error
	Fail(ctx context.Context, jobId string, errorMessage string) error
}
