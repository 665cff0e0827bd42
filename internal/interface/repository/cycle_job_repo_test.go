package repository

import (
	"context"
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCycleJobRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	repo := NewRedisCycleJobRepository(client, "fw", time.Minute)
	ctx := context.Background()

	job := &entity.CycleJob{ID: "job-1", Email: "ada@example.com", Status: entity.JobDone, Notified: true, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Save(ctx, job))
	assert.True(t, mr.Exists("fw:cycle-job:job-1"))
	assert.Equal(t, time.Minute, mr.TTL("fw:cycle-job:job-1"))

	found, err := repo.FindByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, entity.JobDone, found.Status)
	assert.True(t, found.Notified)

	mr.FastForward(2 * time.Minute)
	_, err = repo.FindByID(ctx, "job-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryCycleJobRepository(t *testing.T) {
	repo := NewMemoryCycleJobRepository()
	ctx := context.Background()

	job := &entity.CycleJob{ID: "job-1", Status: entity.JobQueued}
	require.NoError(t, repo.Save(ctx, job))
	job.Status = entity.JobRunning

	found, err := repo.FindByID(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, entity.JobQueued, found.Status)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
