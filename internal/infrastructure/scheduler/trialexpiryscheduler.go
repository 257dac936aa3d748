package scheduler

import (
	"context"
	"sync"
	"time"

	entitlementUsecases "github.com/kazihub-inc/kazihub/internal/application/entitlement/usecases"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

// TrialExpiryScheduler periodically sweeps elapsed trials.
// Access evaluation already expires trials lazily on read; the sweep only
// bounds how stale idle accounts can get before their events fire.
type TrialExpiryScheduler struct {
	expireTrialsUC *entitlementUsecases.ExpireTrialsUseCase
	logger         logger.Interface
	stopChan       chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	interval       time.Duration
}

// NewTrialExpiryScheduler creates a new TrialExpiryScheduler
func NewTrialExpiryScheduler(
	expireTrialsUC *entitlementUsecases.ExpireTrialsUseCase,
	interval time.Duration,
	logger logger.Interface,
) *TrialExpiryScheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &TrialExpiryScheduler{
		expireTrialsUC: expireTrialsUC,
		logger:         logger,
		stopChan:       make(chan struct{}),
		interval:       interval,
	}
}

// Start starts the scheduler
func (s *TrialExpiryScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting trial expiry scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *TrialExpiryScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping trial expiry scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("trial expiry scheduler stopped")
	})
}

func (s *TrialExpiryScheduler) runLoop(ctx context.Context) {
	// Sweep immediately on startup to clear anything that elapsed while down
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("trial expiry scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *TrialExpiryScheduler) sweep(ctx context.Context) {
	startTime := time.Now()

	expiredCount, err := s.expireTrialsUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("trial expiry sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if expiredCount > 0 {
		s.logger.Infow("trial expiry sweep completed",
			"expired", expiredCount,
			"duration", time.Since(startTime),
		)
	} else {
		s.logger.Debugw("trial expiry sweep found nothing to do",
			"duration", time.Since(startTime),
		)
	}
}
