package usecases

import (
	"context"
	"fmt"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/dto"
	vo "github.com/kazihub-inc/kazihub/internal/domain/checkout/valueobjects"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type SelectMethodCommand struct {
	CheckoutSID  string
	AccountEmail string
	Method       string
}

// SelectMethodUseCase picks the payment method for an open session.
type SelectMethodUseCase struct {
	draftStore DraftStore
	catalog    *plan.Catalog
	logger     logger.Interface
}

func NewSelectMethodUseCase(draftStore DraftStore, catalog *plan.Catalog, logger logger.Interface) *SelectMethodUseCase {
	return &SelectMethodUseCase{draftStore: draftStore, catalog: catalog, logger: logger}
}

func (uc *SelectMethodUseCase) Execute(ctx context.Context, cmd SelectMethodCommand) (*dto.CheckoutDTO, error) {
	draft, err := loadOwnedDraft(ctx, uc.draftStore, cmd.CheckoutSID, cmd.AccountEmail)
	if err != nil {
		return nil, err
	}

	method, err := vo.NewPaymentMethod(cmd.Method)
	if err != nil {
		return nil, err
	}

	if err := draft.SelectMethod(method); err != nil {
		return nil, err
	}
	if err := uc.draftStore.Save(ctx, draft); err != nil {
		uc.logger.Errorw("failed to save checkout draft", "error", err, "sid", draft.SID())
		return nil, fmt.Errorf("failed to save checkout draft: %w", err)
	}

	uc.logger.Debugw("payment method selected", "sid", draft.SID(), "method", method.String())
	return dto.NewCheckoutDTO(draft, amountFor(uc.catalog, draft)), nil
}
