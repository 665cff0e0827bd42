package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisCycleJobRepository keeps cycle job status as JSON values with a TTL
type RedisCycleJobRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCycleJobRepository creates a Redis backed job status store
func NewRedisCycleJobRepository(client *redis.Client, prefix string, ttl time.Duration) repository.CycleJobRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCycleJobRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisCycleJobRepository) key(id string) string {
	return fmt.Sprintf("%s:cycle-job:%s", r.prefix, id)
}

// Save stores the job and refreshes its TTL
func (r *RedisCycleJobRepository) Save(ctx context.Context, job *entity.CycleJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return r.client.Set(ctx, r.key(job.ID), data, r.ttl).Err()
}

// FindByID loads a job by id
func (r *RedisCycleJobRepository) FindByID(ctx context.Context, id string) (*entity.CycleJob, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var job entity.CycleJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// MemoryCycleJobRepository is the in-process job store used without Redis
type MemoryCycleJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]entity.CycleJob
}

// NewMemoryCycleJobRepository creates an in-memory job status store
func NewMemoryCycleJobRepository() *MemoryCycleJobRepository {
	return &MemoryCycleJobRepository{jobs: make(map[string]entity.CycleJob)}
}

// Save stores a copy of the job
func (r *MemoryCycleJobRepository) Save(ctx context.Context, job *entity.CycleJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

// FindByID returns a copy of the stored job
func (r *MemoryCycleJobRepository) FindByID(ctx context.Context, id string) (*entity.CycleJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &job, nil
}
