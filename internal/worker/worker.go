package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
	"github.com/akolanti/DoodleAPI/internal/metrics"
	"github.com/akolanti/DoodleAPI/internal/pipeline"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

// Worker is the single polling claimer: every tick it atomically claims at
// most one queued job and drives it to a terminal state before the next claim.
// Chunk-level parallelism lives inside the pipeline, not here.
type Worker struct {
	jobs        jobModel.JobStore
	pipeline    pipeline.Service
	interval    time.Duration
	jobCeiling  time.Duration
	stopChannel chan bool
	waitGroup   *sync.WaitGroup
	logger      *logger_i.Logger
}

func NewWorker(jobs jobModel.JobStore, pipelineService pipeline.Service) *Worker {
	return &Worker{
		jobs:       jobs,
		pipeline:   pipelineService,
		interval:   config.WorkerPollInterval,
		jobCeiling: config.JobExecutionCeiling,
		logger:     logger_i.NewLogger("JobWorker"),
	}
}

func (w *Worker) Start(stopChannel chan bool, waitGroup *sync.WaitGroup) {
	w.stopChannel = stopChannel
	w.waitGroup = waitGroup
	waitGroup.Add(1)
	go w.poll()
}

func (w *Worker) poll() {
	defer w.waitGroup.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.logger.Info("Job worker polling", "interval", w.interval)

	for {
		select {
		case <-w.stopChannel:
			w.logger.Info("Stop worker signal received")
			return
		case <-ticker.C:
			w.Tick(context.Background())
		}
	}
}

// Tick claims at most one queued job and runs it. A poisoned job never takes
// the polling loop down with it.
func (w *Worker) Tick(ctx context.Context) {
	job, claimed := w.jobs.ClaimNextQueued(ctx)
	if !claimed {
		return
	}
	metrics.DecrementJobsInQueue()
	w.runJob(ctx, job)
}

func (w *Worker) runJob(parent context.Context, job jobModel.Job) {
	start := time.Now()
	status := string(jobModel.JobStatusCompleted)
	defer func() {
		metrics.CaptureJobMetrics(status, time.Since(start))
	}()

	log := w.logger.With("jobId", job.Id, "traceId", job.TraceId)
	log.Debug("Processing job", "file", job.FileName)

	ctxTrace := context.WithValue(parent, config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, w.jobCeiling)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			status = string(jobModel.JobStatusFailed)
			log.Error("Job panicked", "panic", r)
			w.fail(job.Id, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := w.pipeline.ExecuteJob(ctx, job); err != nil {
		status = string(jobModel.JobStatusFailed)
		log.Error("Job failed", "error", err)
		w.fail(job.Id, err.Error())
		return
	}
	log.Info("Job completed", "elapsed", time.Since(start))
}

// fail gets a fresh context; the job's own context may already be expired.
func (w *Worker) fail(jobId string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := w.jobs.Fail(ctx, jobId, message); err != nil {
		w.logger.Error("Failed to mark job failed", "jobId", jobId, "error", err)
	}
}
