package scheduler

import (
	"context"
	"sync"
	"time"

	"talentika/internal/shared/biztime"
	"talentika/internal/shared/logger"
)

// BatchJob processes one batch and reports how many items it handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// BatchScheduler runs a BatchJob on a fixed interval. Runs never overlap: a tick that
// arrives while a batch is in flight is dropped by the ticker.
type BatchScheduler struct {
	name       string
	job        BatchJob
	logger     logger.Interface
	interval   time.Duration
	runTimeout time.Duration
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

func NewBatchScheduler(name string, job BatchJob, interval time.Duration, log logger.Interface) *BatchScheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &BatchScheduler{
		name:       name,
		job:        job,
		logger:     log.With("scheduler", name),
		interval:   interval,
		runTimeout: interval,
		stopChan:   make(chan struct{}),
	}
}

// NewSubscriptionScheduler sweeps active subscriptions whose window has ended.
func NewSubscriptionScheduler(job BatchJob, interval time.Duration, log logger.Interface) *BatchScheduler {
	return NewBatchScheduler("subscription-expiry", job, interval, log)
}

// NewActivationRetryScheduler retries activation for paid transactions that have none.
func NewActivationRetryScheduler(job BatchJob, interval time.Duration, log logger.Interface) *BatchScheduler {
	return NewBatchScheduler("activation-retry", job, interval, log)
}

func (s *BatchScheduler) Name() string {
	return s.name
}

func (s *BatchScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop waits for an in-flight batch to finish.
func (s *BatchScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("scheduler stopped")
	})
}

func (s *BatchScheduler) runLoop(ctx context.Context) {
	// Catch up on anything left over from before a restart.
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *BatchScheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	startTime := biztime.NowUTC()
	count, err := s.job.Execute(runCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Errorw("batch failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if count > 0 {
		s.logger.Infow("batch processed",
			"count", count,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("nothing to process",
			"duration", time.Since(startTime),
		)
	}
}
