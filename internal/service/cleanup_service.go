package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/marginalia-api/pkg/jobs"
)

type expiredTokenSweeper interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// CleanupService periodically removes revocation records whose tokens
// have passed their natural expiry and no longer need to be denylisted.
type CleanupService struct {
	store    expiredTokenSweeper
	logger   *zap.Logger
	interval time.Duration

	queue  *jobs.Queue
	ticker *time.Ticker
	done   chan struct{}
}

// NewCleanupService constructs a CleanupService instance.
func NewCleanupService(store expiredTokenSweeper, logger *zap.Logger, interval time.Duration) *CleanupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Hour
	}

	s := &CleanupService{store: store, logger: logger, interval: interval, done: make(chan struct{})}
	s.queue = jobs.NewQueue("revocation-cleanup", s.sweep, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: 2,
		RetryDelay: time.Minute,
		Logger:     logger,
	})
	return s
}

// Start launches the sweep loop. The first sweep runs after one interval.
func (s *CleanupService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.done:
				return
			case <-ctx.Done():
				return
			case <-s.ticker.C:
				job := jobs.Job{ID: uuid.NewString(), Type: "sweep-expired-revocations"}
				if err := s.queue.Enqueue(job); err != nil {
					s.logger.Warn("failed to enqueue revocation sweep", zap.Error(err))
				}
			}
		}
	}()
}

// Stop halts the sweep loop and waits for in-flight sweeps to finish.
func (s *CleanupService) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
	s.queue.Stop()
}

func (s *CleanupService) sweep(ctx context.Context, job jobs.Job) error {
	deleted, err := s.store.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("swept expired revocation records", zap.Int64("deleted", deleted))
	}
	return nil
}
