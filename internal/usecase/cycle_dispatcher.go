package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	"github.com/google/uuid"
)

// ErrDispatcherStopped is returned when a job is submitted after Stop
var ErrDispatcherStopped = errors.New("cycle dispatcher stopped")

// CycleRunner runs the notification cycle for one user
type CycleRunner interface {
	RunForUser(ctx context.Context, email string) (bool, error)
}

// CycleDispatcher runs per-user cycles either inline or on a pool of background workers
type CycleDispatcher struct {
	runner  CycleRunner
	jobs    repository.CycleJobRepository
	queue   chan *entity.CycleJob
	workers int
	timeout time.Duration
	logger  logger.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewCycleDispatcher creates a dispatcher with a bounded job queue
func NewCycleDispatcher(
	runner CycleRunner,
	jobs repository.CycleJobRepository,
	workers int,
	queueSize int,
	timeout time.Duration,
	logger logger.Logger,
) *CycleDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &CycleDispatcher{
		runner:  runner,
		jobs:    jobs,
		queue:   make(chan *entity.CycleJob, queueSize),
		workers: workers,
		timeout: timeout,
		logger:  logger,
	}
}

// Start launches the workers; they exit once Stop drains the queue
func (d *CycleDispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func(worker int) {
			defer d.wg.Done()
			for job := range d.queue {
				d.execute(ctx, job)
			}
			d.logger.Debug("Cycle worker stopped", "worker", worker)
		}(i)
	}
	d.logger.Info("Cycle dispatcher started", "workers", d.workers, "queueSize", cap(d.queue))
}

// Stop closes the queue and waits for queued jobs to finish
func (d *CycleDispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

// Run executes the cycle for one user in the caller's goroutine
func (d *CycleDispatcher) Run(ctx context.Context, email string) (bool, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()
	return d.runner.RunForUser(ctx, email)
}

// Submit queues the cycle for one user and returns the job.
// When the queue is full the job runs inline before Submit returns.
func (d *CycleDispatcher) Submit(ctx context.Context, email string) (*entity.CycleJob, error) {
	now := time.Now().UTC()
	job := &entity.CycleJob{
		ID:        uuid.NewString(),
		Email:     email,
		Status:    entity.JobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.jobs.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	d.mu.RLock()
	if d.stopped {
		d.mu.RUnlock()
		return nil, ErrDispatcherStopped
	}
	queued := *job
	select {
	case d.queue <- job:
		d.mu.RUnlock()
		return &queued, nil
	default:
		d.mu.RUnlock()
	}

	d.logger.Warn("Cycle queue full, running inline", "jobID", job.ID, "email", email)
	d.execute(ctx, job)
	return job, nil
}

// Job returns the current status of a submitted job
func (d *CycleDispatcher) Job(ctx context.Context, id string) (*entity.CycleJob, error) {
	return d.jobs.FindByID(ctx, id)
}

func (d *CycleDispatcher) execute(ctx context.Context, job *entity.CycleJob) {
	d.updateJob(ctx, job, entity.JobRunning, false, nil)

	runCtx, cancel := d.withTimeout(ctx)
	notified, err := d.runner.RunForUser(runCtx, job.Email)
	cancel()

	if err != nil {
		d.logger.Error("Cycle job failed", "jobID", job.ID, "email", job.Email, "error", err)
		d.updateJob(ctx, job, entity.JobFailed, notified, err)
		return
	}
	d.updateJob(ctx, job, entity.JobDone, notified, nil)
}

func (d *CycleDispatcher) updateJob(ctx context.Context, job *entity.CycleJob, status string, notified bool, jobErr error) {
	job.Status = status
	job.Notified = notified
	job.UpdatedAt = time.Now().UTC()
	if jobErr != nil {
		job.Error = jobErr.Error()
	}

	// status writes outlive a cancelled request
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := d.jobs.Save(saveCtx, job); err != nil {
		d.logger.Warn("Failed to save job status", "jobID", job.ID, "status", status, "error", err)
	}
}

func (d *CycleDispatcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return WithCycleTimeout(ctx, d.timeout)
}

// WithCycleTimeout bounds a cycle run by timeout; zero or negative means no limit
func WithCycleTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
