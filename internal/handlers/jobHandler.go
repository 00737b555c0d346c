package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DoodleAPI/internal/blob"
	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
	"github.com/akolanti/DoodleAPI/internal/metrics"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	jobs  jobModel.JobStore
	blobs blob.Store
}

func InitJobHandler(jobs jobModel.JobStore, blobs blob.Store) {
	once.Do(func() {
		handlerInstance = &JobHandler{jobs: jobs, blobs: blobs}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func CreateQueuedJob(newJob newJobData) error {
	log := logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	log.Info("To create new job", "file", newJob.fileName)

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.OwnerId = newJob.ownerId
	_job.TraceId = newJob.traceId
	_job.FileName = newJob.fileName
	_job.FileType = newJob.fileType
	_job.FileKey = newJob.fileKey
	_job.FileURL = newJob.fileURL
	_job.Status = jobModel.JobStatusQueued
	_job.CreatedTime = time.Now()

	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, newJob.traceId)
	if err := handlerInstance.jobs.CreateQueued(ctxC, _job); err != nil {
		log.Error("Could not enqueue job", "error", err)
		return err
	}

	//metrics
	metrics.IncrementJobsInQueue()
	log.Info("Created new job")
	return nil
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.jobs.GetJob(ctxC, id)
	}
	return result, false
}

func storeUpload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return handlerInstance.blobs.Put(ctx, key, data, contentType)
}
