package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type BeginCheckoutCommand struct {
	AccountEmail string
	PlanID       string
	Cycle        string
}

// BeginCheckoutUseCase opens a checkout session for a plan.
type BeginCheckoutUseCase struct {
	draftStore DraftStore
	catalog    *plan.Catalog
	draftTTL   time.Duration
	logger     logger.Interface
	now        func() time.Time
}

func NewBeginCheckoutUseCase(
	draftStore DraftStore,
	catalog *plan.Catalog,
	draftTTL time.Duration,
	logger logger.Interface,
) *BeginCheckoutUseCase {
	return &BeginCheckoutUseCase{
		draftStore: draftStore,
		catalog:    catalog,
		draftTTL:   draftTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *BeginCheckoutUseCase) Execute(ctx context.Context, cmd BeginCheckoutCommand) (*dto.CheckoutDTO, error) {
	if cmd.AccountEmail == "" {
		return nil, entitlement.ErrNotAuthenticated
	}

	p, err := uc.catalog.Get(cmd.PlanID)
	if err != nil {
		return nil, err
	}
	cycle, err := plan.NewBillingCycle(cmd.Cycle)
	if err != nil {
		return nil, err
	}

	draft, err := checkout.NewDraft(cmd.AccountEmail, cmd.PlanID, cycle, uc.now(), uc.draftTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkout: %w", err)
	}

	if err := uc.draftStore.Save(ctx, draft); err != nil {
		uc.logger.Errorw("failed to save checkout draft", "error", err, "sid", draft.SID())
		return nil, fmt.Errorf("failed to save checkout draft: %w", err)
	}

	uc.logger.Infow("checkout opened",
		"sid", draft.SID(),
		"account_email", cmd.AccountEmail,
		"plan_id", cmd.PlanID,
		"cycle", cycle.String(),
	)

	return dto.NewCheckoutDTO(draft, p.PriceCents(cycle)), nil
}
