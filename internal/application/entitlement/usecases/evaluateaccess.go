package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kazihub-inc/kazihub/internal/application/entitlement/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type EvaluateAccessCommand struct {
	AccountEmail string
}

// EvaluateAccessUseCase answers whether an account currently has premium
// access. Evaluation is also the lazy expiry point: a trial found past its
// cutoff is expired in place before the denial is returned, so no separate
// process is required for correctness.
type EvaluateAccessUseCase struct {
	entitlementRepo entitlement.EntitlementRepository
	projectionCache ProjectionCache
	eventPublisher  events.EventPublisher
	logger          logger.Interface
	now             func() time.Time
}

func NewEvaluateAccessUseCase(
	entitlementRepo entitlement.EntitlementRepository,
	projectionCache ProjectionCache,
	eventPublisher events.EventPublisher,
	logger logger.Interface,
) *EvaluateAccessUseCase {
	return &EvaluateAccessUseCase{
		entitlementRepo: entitlementRepo,
		projectionCache: projectionCache,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *EvaluateAccessUseCase) Execute(ctx context.Context, cmd EvaluateAccessCommand) (*dto.AccessDecision, error) {
	if cmd.AccountEmail == "" {
		return dto.Denied(dto.ReasonNoAccount), nil
	}

	record, err := uc.entitlementRepo.GetActiveByEmail(ctx, cmd.AccountEmail)
	if err != nil {
		if errors.Is(err, entitlement.ErrNotFound) {
			return uc.deniedWithoutActive(ctx, cmd.AccountEmail), nil
		}
		uc.logger.Errorw("failed to load active entitlement", "error", err, "account_email", cmd.AccountEmail)
		return nil, fmt.Errorf("failed to load active entitlement: %w", err)
	}

	if err := record.Validate(); err != nil {
		// A malformed record never grants access; treat it as absent
		// rather than failing the whole request.
		uc.logger.Warnw("malformed entitlement record, denying access",
			"error", err,
			"account_email", cmd.AccountEmail,
			"sid", record.SID(),
		)
		return dto.Denied(dto.ReasonNoSubscription), nil
	}

	now := uc.now()

	if record.IsTrial() && record.IsTrialElapsed(now) {
		if err := uc.expireLazily(ctx, record, now); err != nil {
			return nil, err
		}
		return &dto.AccessDecision{
			Allowed:       false,
			Reason:        dto.ReasonTrialExpired,
			ExpiredPlanID: record.PlanID(),
		}, nil
	}

	decision := &dto.AccessDecision{
		Allowed: true,
		PlanID:  record.PlanID(),
	}
	if record.IsTrial() {
		decision.IsTrialActive = true
		decision.DaysLeft = record.TrialDaysLeft(now)
	}

	if err := uc.projectionCache.SetPremium(ctx, cmd.AccountEmail, true); err != nil {
		uc.logger.Warnw("failed to refresh premium projection", "error", err, "account_email", cmd.AccountEmail)
	}

	return decision, nil
}

// deniedWithoutActive distinguishes an account whose trial ran out from one
// that never subscribed. The trial_expired denial sticks until a new record
// is activated: cancelling or replacing a plan clears it, cache TTLs do not.
func (uc *EvaluateAccessUseCase) deniedWithoutActive(ctx context.Context, accountEmail string) *dto.AccessDecision {
	records, err := uc.entitlementRepo.ListByEmail(ctx, accountEmail)
	if err != nil {
		uc.logger.Warnw("failed to list entitlement history", "error", err, "account_email", accountEmail)
		return dto.Denied(dto.ReasonNoSubscription)
	}

	var latest *entitlement.Entitlement
	for _, r := range records {
		if latest == nil || r.Since().After(latest.Since()) {
			latest = r
		}
	}
	if latest != nil && latest.IsTrial() && latest.ExpiredAt() != nil {
		return &dto.AccessDecision{
			Allowed:       false,
			Reason:        dto.ReasonTrialExpired,
			ExpiredPlanID: latest.PlanID(),
		}
	}
	return dto.Denied(dto.ReasonNoSubscription)
}

func (uc *EvaluateAccessUseCase) expireLazily(ctx context.Context, record *entitlement.Entitlement, now time.Time) error {
	if err := record.Expire(now); err != nil {
		uc.logger.Errorw("failed to expire trial", "error", err, "sid", record.SID())
		return fmt.Errorf("failed to expire trial: %w", err)
	}

	if err := uc.entitlementRepo.Update(ctx, record); err != nil {
		uc.logger.Errorw("failed to persist trial expiry", "error", err, "sid", record.SID())
		return fmt.Errorf("failed to persist trial expiry: %w", err)
	}

	if err := uc.projectionCache.Invalidate(ctx, record.AccountEmail()); err != nil {
		uc.logger.Warnw("failed to invalidate premium projection", "error", err, "account_email", record.AccountEmail())
	}

	if err := uc.eventPublisher.Publish(entitlement.NewTrialExpiredEvent(record.AccountEmail(), record.PlanID())); err != nil {
		uc.logger.Warnw("failed to publish trial expired event", "error", err, "account_email", record.AccountEmail())
	}

	uc.logger.Infow("trial expired lazily",
		"account_email", record.AccountEmail(),
		"plan_id", record.PlanID(),
		"sid", record.SID(),
	)
	return nil
}
