package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem JobStore")

type InMemoryJobStore struct {
	jobMutex *sync.Mutex
	jobMap   map[string]jobModel.Job
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{
		jobMutex: new(sync.Mutex),
		jobMap:   make(map[string]jobModel.Job),
	}
}

func (store *InMemoryJobStore) CreateQueued(ctx context.Context, job jobModel.Job) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	job.Status = jobModel.JobStatusQueued
	store.jobMap[job.Id] = job
	inMemLogger.Debug("Queued job", "jobId", job.Id)
	return nil
}

func (store *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	result, found := store.jobMap[jobId]
	return result, found
}

// ClaimNextQueued holds the lock across the find-and-flip, which is what
// makes the claim atomic for concurrent in-process workers.
func (store *InMemoryJobStore) ClaimNextQueued(ctx context.Context) (jobModel.Job, bool) {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()

	var oldest *jobModel.Job
	for id := range store.jobMap {
		job := store.jobMap[id]
		if job.Status != jobModel.JobStatusQueued {
			continue
		}
		if oldest == nil || job.CreatedTime.Before(oldest.CreatedTime) {
			oldest = &job
		}
	}
	if oldest == nil {
		return jobModel.Job{}, false
	}

	now := time.Now()
	claimed := *oldest
	claimed.Status = jobModel.JobStatusProcessing
	claimed.StartedAt = &now
	store.jobMap[claimed.Id] = claimed
	return claimed, true
}

func (store *InMemoryJobStore) UpdateProgress(ctx context.Context, jobId string, message string) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	job, found := store.jobMap[jobId]
	if !found {
		return nil
	}
	job.ProgressMessage = message
	store.jobMap[jobId] = job
	return nil
}

func (store *InMemoryJobStore) Complete(ctx context.Context, jobId string, resultLocator string) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	job, found := store.jobMap[jobId]
	if !found {
		return nil
	}
	now := time.Now()
	job.Status = jobModel.JobStatusCompleted
	job.ResultLocator = resultLocator
	job.ProgressMessage = "Completed"
	job.FinishedAt = &now
	store.jobMap[jobId] = job
	return nil
}

func (store *InMemoryJobStore) Fail(ctx context.Context, jobId string, errorMessage string) error {
	store.jobMutex.Lock()
	defer store.jobMutex.Unlock()
	job, found := store.jobMap[jobId]
	if !found {
		return nil
	}
	now := time.Now()
	job.Status = jobModel.JobStatusFailed
	job.Error = errorMessage
	job.FinishedAt = &now
	store.jobMap[jobId] = job
	return nil
}
