package usecases

import (
	"context"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type GetCheckoutCommand struct {
	CheckoutSID  string
	AccountEmail string
}

// GetCheckoutUseCase returns the current view of a session.
type GetCheckoutUseCase struct {
	draftStore DraftStore
	catalog    *plan.Catalog
	logger     logger.Interface
}

func NewGetCheckoutUseCase(draftStore DraftStore, catalog *plan.Catalog, logger logger.Interface) *GetCheckoutUseCase {
	return &GetCheckoutUseCase{draftStore: draftStore, catalog: catalog, logger: logger}
}

func (uc *GetCheckoutUseCase) Execute(ctx context.Context, cmd GetCheckoutCommand) (*dto.CheckoutDTO, error) {
	draft, err := loadOwnedDraft(ctx, uc.draftStore, cmd.CheckoutSID, cmd.AccountEmail)
	if err != nil {
		return nil, err
	}
	return dto.NewCheckoutDTO(draft, amountFor(uc.catalog, draft)), nil
}
