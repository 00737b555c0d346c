package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/data/redisStore"
	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

const pendingQueueKey = "jobs:pending"

type RedisJobStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisJobStore(ctx context.Context) *RedisJobStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisJobStore)
	if inner == nil {
		return nil
	}
	return &RedisJobStore{
		store:  inner,
		logger: logger_i.NewLogger("JobStore"),
	}
}

func (s *RedisJobStore) CreateQueued(ctx context.Context, job jobModel.Job) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", job.Id)
	job.Status = jobModel.JobStatusQueued
	if err := s.saveJob(ctx, job); err != nil {
		return err
	}
	// the id only enters the pending queue after the record exists
	if err := s.store.ListPush(ctx, pendingQueueKey, job.Id); err != nil {
		return err
	}
	log.Debug("Queued job")
	return nil
}

// ClaimNextQueued pops the oldest pending id. LPOP is atomic in Redis, so a
// popped id belongs to exactly one caller; the status write that follows is
// owner-exclusive because nobody else holds the id.
func (s *RedisJobStore) ClaimNextQueued(ctx context.Context) (jobModel.Job, bool) {
	for {
		id, err := s.store.ListPop(ctx, pendingQueueKey)
		if s.store.IsNil(err) {
			return jobModel.Job{}, false
		} else if err != nil {
			s.logger.Error("Error popping pending queue", "error", err)
			return jobModel.Job{}, false
		}

		job, found := s.GetJob(ctx, id)
		if !found {
			// record expired while its id sat in the queue, move on
			s.logger.Warn("Pending job record missing, skipping", "jobId", id)
			continue
		}
		if job.Status != jobModel.JobStatusQueued {
			continue
		}

		now := time.Now()
		job.Status = jobModel.JobStatusProcessing
		job.StartedAt = &now
		if err := s.saveJob(ctx, job); err != nil {
			s.logger.Error("Error claiming job", "jobId", id, "error", err)
			// the record is still queued; without its id back in the
			// pending list the job would never be claimable again
			if pushErr := s.store.ListPush(ctx, pendingQueueKey, id); pushErr != nil {
				s.logger.Error("Error restoring pending id", "jobId", id, "error", pushErr)
			}
			return jobModel.Job{}, false
		}
		return job, true
	}
}

func (s *RedisJobStore) UpdateProgress(ctx context.Context, jobId string, message string) error {
	job, found := s.GetJob(ctx, jobId)
	if !found {
		return nil
	}
	job.ProgressMessage = message
	return s.saveJob(ctx, job)
}

func (s *RedisJobStore) Complete(ctx context.Context, jobId string, resultLocator string) error {
	return s.finish(ctx, jobId, func(job *jobModel.Job) {
		job.Status = jobModel.JobStatusCompleted
		job.ResultLocator = resultLocator
		job.ProgressMessage = "Completed"
	})
}

func (s *RedisJobStore) Fail(ctx context.Context, jobId string, errorMessage string) error {
	return s.finish(ctx, jobId, func(job *jobModel.Job) {
		job.Status = jobModel.JobStatusFailed
		job.Error = errorMessage
	})
}

func (s *RedisJobStore) finish(ctx context.Context, jobId string, mutate func(*jobModel.Job)) error {
	job, found := s.GetJob(ctx, jobId)
	if !found {
		return nil
	}
	now := time.Now()
	job.FinishedAt = &now
	mutate(&job)
	return s.saveJob(ctx, job)
}

func (s *RedisJobStore) saveJob(ctx context.Context, job jobModel.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, job.Id, data, config.RedisJobStoreTTL)
}

func (s *RedisJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	var job jobModel.Job
	val, err := s.store.Get(ctx, jobId)
	if s.store.IsNil(err) {
		return job, false
	} else if err != nil {
		s.logger.Error("Error reading job", "jobId", jobId, "error", err)
		return job, false
	}

	if err = json.Unmarshal([]byte(val), &job); err != nil {
		s.logger.Error("Error unmarshalling job", "jobId", jobId, "error", err)
		return job, false
	}
	return job, true
}

func TestJobStore(store *redisStore.Store) *RedisJobStore {
	return &RedisJobStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
