package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/DoodleAPI/internal/data/store"
	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
)

// mockPipeline records execution order and finishes jobs like the real one
type mockPipeline struct {
	mu       sync.Mutex
	executed []string
	jobs     jobModel.JobStore

	OnExecute func(ctx context.Context, job jobModel.Job) error
}

func (m *mockPipeline) ExecuteJob(ctx context.Context, job jobModel.Job) error {
	m.mu.Lock()
	m.executed = append(m.executed, job.Id)
	m.mu.Unlock()

	if m.OnExecute != nil {
		return m.OnExecute(ctx, job)
	}
	return m.jobs.Complete(ctx, job.Id, "documents/"+job.Id)
}

func (m *mockPipeline) executedIds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.executed...)
}

func queueJob(t *testing.T, jobs jobModel.JobStore, id string, createdAt time.Time) {
	t.Helper()
	err := jobs.CreateQueued(context.Background(), jobModel.Job{
		Id:          id,
		OwnerId:     "tester",
		TraceId:     "trace-" + id,
		FileName:    id + ".pdf",
		FileType:    "application/pdf",
		FileKey:     "uploads/tester/" + id,
		CreatedTime: createdAt,
	})
	if err != nil {
		t.Fatalf("CreateQueued failed: %v", err)
	}
}

func TestWorker_ProcessesJobsOneAtATime(t *testing.T) {
	jobs := store.InitInMemoryJobStore()
	pipe := &mockPipeline{jobs: jobs}
	w := NewWorker(jobs, pipe)

	base := time.Now()
	queueJob(t, jobs, "job-1", base)
	queueJob(t, jobs, "job-2", base.Add(time.Second))

	w.Tick(context.Background())
	w.Tick(context.Background())

	executed := pipe.executedIds()
	if len(executed) != 2 {
		t.Fatalf("Executed %d jobs, want 2", len(executed))
	}
	if executed[0] != "job-1" || executed[1] != "job-2" {
		t.Errorf("Claim order got %v, want oldest first", executed)
	}

	first, _ := jobs.GetJob(context.Background(), "job-1")
	second, _ := jobs.GetJob(context.Background(), "job-2")
	if first.Status != jobModel.JobStatusCompleted || second.Status != jobModel.JobStatusCompleted {
		t.Errorf("Statuses got %s/%s, want completed/completed", first.Status, second.Status)
	}
	if first.FinishedAt == nil || second.StartedAt == nil {
		t.Fatal("Terminal jobs are missing timestamps")
	}
	// strictly serial: the second job cannot start before the first finished
	if second.StartedAt.Before(*first.FinishedAt) {
		t.Errorf("Job 2 started %v before job 1 finished %v", second.StartedAt, first.FinishedAt)
	}
}

func TestWorker_EmptyQueueIsANoop(t *testing.T) {
	jobs := store.InitInMemoryJobStore()
	pipe := &mockPipeline{jobs: jobs}
	w := NewWorker(jobs, pipe)

	w.Tick(context.Background())

	if executed := pipe.executedIds(); len(executed) != 0 {
		t.Errorf("Empty queue executed %v", executed)
	}
}

func TestWorker_FailedJobDoesNotStopTheLoop(t *testing.T) {
	jobs := store.InitInMemoryJobStore()
	pipe := &mockPipeline{jobs: jobs}
	pipe.OnExecute = func(ctx context.Context, job jobModel.Job) error {
		if job.Id == "job-bad" {
			return errors.New("could not extract content from the file")
		}
		return jobs.Complete(ctx, job.Id, "documents/"+job.Id)
	}
	w := NewWorker(jobs, pipe)

	base := time.Now()
	queueJob(t, jobs, "job-bad", base)
	queueJob(t, jobs, "job-good", base.Add(time.Second))

	w.Tick(context.Background())
	w.Tick(context.Background())

	bad, _ := jobs.GetJob(context.Background(), "job-bad")
	if bad.Status != jobModel.JobStatusFailed {
		t.Errorf("Bad job status got %s, want failed", bad.Status)
	}
	if bad.Error == "" {
		t.Error("Failed job is missing its error message")
	}

	good, _ := jobs.GetJob(context.Background(), "job-good")
	if good.Status != jobModel.JobStatusCompleted {
		t.Errorf("Good job status got %s, want completed", good.Status)
	}
}

func TestWorker_RecoversFromPanic(t *testing.T) {
	jobs := store.InitInMemoryJobStore()
	pipe := &mockPipeline{jobs: jobs}
	pipe.OnExecute = func(ctx context.Context, job jobModel.Job) error {
		panic("malformed pdf blew up the parser")
	}
	w := NewWorker(jobs, pipe)

	queueJob(t, jobs, "job-panic", time.Now())

	w.Tick(context.Background()) // must not propagate the panic

	job, _ := jobs.GetJob(context.Background(), "job-panic")
	if job.Status != jobModel.JobStatusFailed {
		t.Errorf("Panicked job status got %s, want failed", job.Status)
	}
}

func TestWorker_StopSignalRetiresThePoller(t *testing.T) {
	jobs := store.InitInMemoryJobStore()
	w := NewWorker(jobs, &mockPipeline{jobs: jobs})

	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}
	w.Start(stopChan, wg)

	close(stopChan)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Success
	case <-time.After(2 * time.Second):
		t.Error("Worker did not stop within timeout")
	}
}
