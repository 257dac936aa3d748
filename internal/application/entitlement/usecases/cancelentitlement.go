package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type CancelEntitlementCommand struct {
	AccountEmail string
}

// CancelEntitlementUseCase deactivates the account's active record
// immediately. Cancellation never waits for a trial end.
type CancelEntitlementUseCase struct {
	entitlementRepo entitlement.EntitlementRepository
	projectionCache ProjectionCache
	eventPublisher  events.EventPublisher
	logger          logger.Interface
	now             func() time.Time
}

func NewCancelEntitlementUseCase(
	entitlementRepo entitlement.EntitlementRepository,
	projectionCache ProjectionCache,
	eventPublisher events.EventPublisher,
	logger logger.Interface,
) *CancelEntitlementUseCase {
	return &CancelEntitlementUseCase{
		entitlementRepo: entitlementRepo,
		projectionCache: projectionCache,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *CancelEntitlementUseCase) Execute(ctx context.Context, cmd CancelEntitlementCommand) error {
	if cmd.AccountEmail == "" {
		return entitlement.ErrNotAuthenticated
	}

	record, err := uc.entitlementRepo.GetActiveByEmail(ctx, cmd.AccountEmail)
	if err != nil {
		return err
	}

	if err := record.Cancel(uc.now()); err != nil {
		return fmt.Errorf("failed to cancel entitlement: %w", err)
	}

	if err := uc.entitlementRepo.Update(ctx, record); err != nil {
		uc.logger.Errorw("failed to persist cancellation", "error", err, "sid", record.SID())
		return fmt.Errorf("failed to persist cancellation: %w", err)
	}

	if err := uc.projectionCache.Invalidate(ctx, cmd.AccountEmail); err != nil {
		uc.logger.Warnw("failed to invalidate premium projection", "error", err, "account_email", cmd.AccountEmail)
	}
	if err := uc.eventPublisher.Publish(entitlement.NewDeactivatedEvent(cmd.AccountEmail, record.PlanID())); err != nil {
		uc.logger.Warnw("failed to publish entitlement event", "error", err, "account_email", cmd.AccountEmail)
	}

	uc.logger.Infow("entitlement cancelled",
		"account_email", cmd.AccountEmail,
		"plan_id", record.PlanID(),
		"sid", record.SID(),
	)
	return nil
}
