package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kazihub-inc/kazihub/internal/application/entitlement/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type StartTrialCommand struct {
	AccountEmail string
	PlanID       string
	TrialDays    int
}

// StartTrialUseCase activates a free trial. The trial usage ledger is
// consulted first: an account that ever trialed a plan can never trial it
// again, even after the original records are gone.
type StartTrialUseCase struct {
	entitlementRepo entitlement.EntitlementRepository
	trialUsageRepo  entitlement.TrialUsageRepository
	catalog         *plan.Catalog
	projectionCache ProjectionCache
	eventPublisher  events.EventPublisher
	logger          logger.Interface
	now             func() time.Time
}

func NewStartTrialUseCase(
	entitlementRepo entitlement.EntitlementRepository,
	trialUsageRepo entitlement.TrialUsageRepository,
	catalog *plan.Catalog,
	projectionCache ProjectionCache,
	eventPublisher events.EventPublisher,
	logger logger.Interface,
) *StartTrialUseCase {
	return &StartTrialUseCase{
		entitlementRepo: entitlementRepo,
		trialUsageRepo:  trialUsageRepo,
		catalog:         catalog,
		projectionCache: projectionCache,
		eventPublisher:  eventPublisher,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *StartTrialUseCase) Execute(ctx context.Context, cmd StartTrialCommand) (*dto.EntitlementDTO, error) {
	if cmd.AccountEmail == "" {
		return nil, entitlement.ErrNotAuthenticated
	}
	if !uc.catalog.Has(cmd.PlanID) {
		return nil, fmt.Errorf("unknown plan: %s", cmd.PlanID)
	}

	used, err := uc.trialUsageRepo.Exists(ctx, cmd.AccountEmail, cmd.PlanID)
	if err != nil {
		uc.logger.Errorw("failed to check trial usage ledger", "error", err, "account_email", cmd.AccountEmail)
		return nil, fmt.Errorf("failed to check trial usage: %w", err)
	}
	if used {
		return nil, entitlement.ErrTrialAlreadyUsed
	}

	now := uc.now()
	record, err := entitlement.NewTrialEntitlement(cmd.AccountEmail, cmd.PlanID, now, cmd.TrialDays)
	if err != nil {
		return nil, fmt.Errorf("failed to create trial entitlement: %w", err)
	}

	// The ledger entry goes in first. Its unique (account_email, plan_id)
	// key backstops concurrent starts: a losing writer fails here and the
	// active entitlement is left untouched.
	usage, err := entitlement.NewTrialUsage(cmd.AccountEmail, cmd.PlanID, record.Since(), *record.TrialEnd())
	if err != nil {
		return nil, fmt.Errorf("failed to create trial usage entry: %w", err)
	}
	if err := uc.trialUsageRepo.Record(ctx, usage); err != nil {
		uc.logger.Errorw("failed to record trial usage", "error", err, "account_email", cmd.AccountEmail)
		return nil, fmt.Errorf("failed to record trial usage: %w", err)
	}

	if err := uc.entitlementRepo.ReplaceActive(ctx, record); err != nil {
		uc.logger.Errorw("failed to activate trial", "error", err, "account_email", cmd.AccountEmail)
		return nil, fmt.Errorf("failed to activate trial: %w", err)
	}

	if err := uc.projectionCache.SetPremium(ctx, cmd.AccountEmail, true); err != nil {
		uc.logger.Warnw("failed to refresh premium projection", "error", err, "account_email", cmd.AccountEmail)
	}
	if err := uc.eventPublisher.Publish(entitlement.NewActivatedEvent(cmd.AccountEmail, cmd.PlanID)); err != nil {
		uc.logger.Warnw("failed to publish entitlement event", "error", err, "account_email", cmd.AccountEmail)
	}

	uc.logger.Infow("trial started",
		"account_email", cmd.AccountEmail,
		"plan_id", cmd.PlanID,
		"trial_end", record.TrialEnd(),
		"sid", record.SID(),
	)

	return dto.NewEntitlementDTO(record, now), nil
}
