package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

// expireBatchLimit bounds one sweep pass so a backlog cannot stall the
// scheduler tick.
const expireBatchLimit = 500

// ExpireTrialsUseCase is the background half of trial expiry. Lazy expiry in
// the evaluator already guarantees correctness; the sweep only shortens the
// window in which an idle account still looks premium to dashboards.
type ExpireTrialsUseCase struct {
	entitlementRepo entitlement.EntitlementRepository
	projectionCache ProjectionCache
	eventPublisher  events.EventPublisher
	logger          logger.Interface
	now             func() time.Time
}

func NewExpireTrialsUseCase(
	entitlementRepo entitlement.EntitlementRepository,
	projectionCache ProjectionCache,
	eventPublisher events.EventPublisher,
	logger logger.Interface,
) *ExpireTrialsUseCase {
	return &ExpireTrialsUseCase{
		entitlementRepo: entitlementRepo,
		projectionCache: projectionCache,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             time.Now,
	}
}

// Execute expires every active trial past its cutoff and returns how many
// records were expired. Individual failures are logged and skipped so one
// bad record cannot block the rest of the batch.
func (uc *ExpireTrialsUseCase) Execute(ctx context.Context) (int, error) {
	records, err := uc.entitlementRepo.FindElapsedTrials(ctx, expireBatchLimit)
	if err != nil {
		uc.logger.Errorw("failed to find elapsed trials", "error", err)
		return 0, fmt.Errorf("failed to find elapsed trials: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	now := uc.now()
	expired := 0

	for _, record := range records {
		if !record.IsTrialElapsed(now) {
			continue
		}
		if err := record.Expire(now); err != nil {
			uc.logger.Warnw("failed to expire trial", "error", err, "sid", record.SID())
			continue
		}
		if err := uc.entitlementRepo.Update(ctx, record); err != nil {
			uc.logger.Warnw("failed to persist trial expiry", "error", err, "sid", record.SID())
			continue
		}

		if err := uc.projectionCache.Invalidate(ctx, record.AccountEmail()); err != nil {
			uc.logger.Warnw("failed to invalidate premium projection", "error", err, "account_email", record.AccountEmail())
		}
		if err := uc.eventPublisher.Publish(entitlement.NewTrialExpiredEvent(record.AccountEmail(), record.PlanID())); err != nil {
			uc.logger.Warnw("failed to publish trial expired event", "error", err, "account_email", record.AccountEmail())
		}
		expired++
	}

	if expired > 0 {
		uc.logger.Infow("trial expiry sweep completed", "expired", expired, "scanned", len(records))
	}
	return expired, nil
}
