package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"talentika/internal/shared/logger"
)

type countingJob struct {
	calls atomic.Int32
	err   error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	return 1, j.err
}

func TestBatchScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	job := &countingJob{}
	s := NewBatchScheduler("test", job, 10*time.Millisecond, logger.NewNopLogger())

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return job.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := job.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, job.calls.Load())
}

func TestBatchScheduler_KeepsRunningAfterError(t *testing.T) {
	job := &countingJob{err: errors.New("db down")}
	s := NewActivationRetryScheduler(job, 10*time.Millisecond, logger.NewNopLogger())
	assert.Equal(t, "activation-retry", s.Name())

	s.Start(context.Background())
	defer s.Stop()
	assert.Eventually(t, func() bool { return job.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestBatchScheduler_StopsOnContextCancel(t *testing.T) {
	job := &countingJob{}
	s := NewSubscriptionScheduler(job, time.Hour, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.Eventually(t, func() bool { return job.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestNewBatchScheduler_DefaultInterval(t *testing.T) {
	s := NewBatchScheduler("x", &countingJob{}, 0, logger.NewNopLogger())
	assert.Equal(t, 5*time.Minute, s.interval)
}
