package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/dto"
	entusecases "github.com/kazihub-inc/kazihub/internal/application/entitlement/usecases"
	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type ConfirmCheckoutCommand struct {
	CheckoutSID  string
	AccountEmail string
}

// ConfirmCheckoutUseCase runs settlement for a reviewed session. On success
// the paid entitlement replaces whatever was active and the draft is
// destroyed; on gateway failure the draft survives with all fields intact.
type ConfirmCheckoutUseCase struct {
	draftStore      DraftStore
	gateway         SettlementGateway
	entitlementRepo entitlement.EntitlementRepository
	projectionCache entusecases.ProjectionCache
	eventPublisher  events.EventPublisher
	catalog         *plan.Catalog
	logger          logger.Interface
	now             func() time.Time
}

func NewConfirmCheckoutUseCase(
	draftStore DraftStore,
	gateway SettlementGateway,
	entitlementRepo entitlement.EntitlementRepository,
	projectionCache entusecases.ProjectionCache,
	eventPublisher events.EventPublisher,
	catalog *plan.Catalog,
	logger logger.Interface,
) *ConfirmCheckoutUseCase {
	return &ConfirmCheckoutUseCase{
		draftStore:      draftStore,
		gateway:         gateway,
		entitlementRepo: entitlementRepo,
		projectionCache: projectionCache,
		eventPublisher:  eventPublisher,
		catalog:         catalog,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *ConfirmCheckoutUseCase) Execute(ctx context.Context, cmd ConfirmCheckoutCommand) (*dto.CheckoutDTO, error) {
	draft, err := loadOwnedDraft(ctx, uc.draftStore, cmd.CheckoutSID, cmd.AccountEmail)
	if err != nil {
		return nil, err
	}

	if err := draft.BeginSettlement(); err != nil {
		return nil, err
	}
	if err := uc.draftStore.Save(ctx, draft); err != nil {
		uc.logger.Errorw("failed to save checkout draft", "error", err, "sid", draft.SID())
		return nil, fmt.Errorf("failed to save checkout draft: %w", err)
	}

	amount := amountFor(uc.catalog, draft)
	req := SettlementRequest{
		CheckoutSID:  draft.SID(),
		AccountEmail: draft.AccountEmail(),
		PlanID:       draft.PlanID(),
		AmountCents:  amount,
		Method:       draft.Method(),
		Phone:        draft.Phone(),
		WalletEmail:  draft.WalletEmail(),
		CryptoAddr:   draft.CryptoAddress(),
	}

	if err := uc.gateway.Settle(ctx, req); err != nil {
		return uc.settleFailed(ctx, draft, amount, err)
	}
	return uc.settleSucceeded(ctx, draft, amount)
}

func (uc *ConfirmCheckoutUseCase) settleSucceeded(ctx context.Context, draft *checkout.Draft, amount int64) (*dto.CheckoutDTO, error) {
	record, err := entitlement.NewPaidEntitlement(draft.AccountEmail(), draft.PlanID(), draft.Method().String(), uc.now())
	if err != nil {
		return nil, fmt.Errorf("failed to create entitlement: %w", err)
	}
	// A persistence failure after the gateway accepted must not strand the
	// draft in Settling: mark it failed so the user can retry.
	if err := uc.entitlementRepo.ReplaceActive(ctx, record); err != nil {
		uc.logger.Errorw("failed to activate entitlement after settlement",
			"error", err,
			"sid", draft.SID(),
			"account_email", draft.AccountEmail(),
		)
		return uc.settleFailed(ctx, draft, amount, fmt.Errorf("failed to activate entitlement: %w", err))
	}

	if err := draft.MarkSucceeded(); err != nil {
		return uc.settleFailed(ctx, draft, amount, err)
	}
	if err := uc.draftStore.Delete(ctx, draft.SID()); err != nil {
		uc.logger.Warnw("failed to delete settled checkout draft", "error", err, "sid", draft.SID())
	}

	if err := uc.projectionCache.SetPremium(ctx, draft.AccountEmail(), true); err != nil {
		uc.logger.Warnw("failed to refresh premium projection", "error", err, "account_email", draft.AccountEmail())
	}
	if err := uc.eventPublisher.Publish(entitlement.NewActivatedEvent(draft.AccountEmail(), draft.PlanID())); err != nil {
		uc.logger.Warnw("failed to publish entitlement event", "error", err, "account_email", draft.AccountEmail())
	}

	uc.logger.Infow("checkout settled",
		"sid", draft.SID(),
		"account_email", draft.AccountEmail(),
		"plan_id", draft.PlanID(),
		"method", draft.Method().String(),
		"amount_cents", amount,
	)
	return dto.NewCheckoutDTO(draft, amount), nil
}

func (uc *ConfirmCheckoutUseCase) settleFailed(ctx context.Context, draft *checkout.Draft, amount int64, cause error) (*dto.CheckoutDTO, error) {
	if err := draft.MarkFailed(cause.Error()); err != nil {
		return nil, err
	}
	if err := uc.draftStore.Save(ctx, draft); err != nil {
		uc.logger.Errorw("failed to save failed checkout draft", "error", err, "sid", draft.SID())
		return nil, fmt.Errorf("failed to save checkout draft: %w", err)
	}

	uc.logger.Warnw("checkout settlement failed",
		"sid", draft.SID(),
		"account_email", draft.AccountEmail(),
		"method", draft.Method().String(),
		"error", cause,
	)
	return dto.NewCheckoutDTO(draft, amount), nil
}
