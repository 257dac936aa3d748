package usecases

import (
	"context"
	"fmt"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type RetryCheckoutCommand struct {
	CheckoutSID  string
	AccountEmail string
}

// RetryCheckoutUseCase returns a failed session to the details step.
type RetryCheckoutUseCase struct {
	draftStore DraftStore
	catalog    *plan.Catalog
	logger     logger.Interface
}

func NewRetryCheckoutUseCase(draftStore DraftStore, catalog *plan.Catalog, logger logger.Interface) *RetryCheckoutUseCase {
	return &RetryCheckoutUseCase{draftStore: draftStore, catalog: catalog, logger: logger}
}

func (uc *RetryCheckoutUseCase) Execute(ctx context.Context, cmd RetryCheckoutCommand) (*dto.CheckoutDTO, error) {
	draft, err := loadOwnedDraft(ctx, uc.draftStore, cmd.CheckoutSID, cmd.AccountEmail)
	if err != nil {
		return nil, err
	}

	if err := draft.Retry(); err != nil {
		return nil, err
	}
	if err := uc.draftStore.Save(ctx, draft); err != nil {
		uc.logger.Errorw("failed to save checkout draft", "error", err, "sid", draft.SID())
		return nil, fmt.Errorf("failed to save checkout draft: %w", err)
	}

	uc.logger.Debugw("checkout retried", "sid", draft.SID())
	return dto.NewCheckoutDTO(draft, amountFor(uc.catalog, draft)), nil
}
