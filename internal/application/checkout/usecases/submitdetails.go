package usecases

import (
	"context"
	"fmt"

	"github.com/kazihub-inc/kazihub/internal/application/checkout/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	vo "github.com/kazihub-inc/kazihub/internal/domain/checkout/valueobjects"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type SubmitDetailsCommand struct {
	CheckoutSID  string
	AccountEmail string

	Phone string

	CardName   string
	CardNumber string
	CardExpiry string
	CardCVV    string

	FullName   string
	Address    string
	City       string
	Country    string
	PostalCode string
	Email      string

	WalletEmail string

	CryptoPayload string
}

// SubmitDetailsUseCase validates the payment form. Validation failures are
// not errors: they come back as field-scoped messages on the DTO and the
// session stays editable.
type SubmitDetailsUseCase struct {
	draftStore DraftStore
	catalog    *plan.Catalog
	logger     logger.Interface
}

func NewSubmitDetailsUseCase(draftStore DraftStore, catalog *plan.Catalog, logger logger.Interface) *SubmitDetailsUseCase {
	return &SubmitDetailsUseCase{draftStore: draftStore, catalog: catalog, logger: logger}
}

func (uc *SubmitDetailsUseCase) Execute(ctx context.Context, cmd SubmitDetailsCommand) (*dto.CheckoutDTO, error) {
	draft, err := loadOwnedDraft(ctx, uc.draftStore, cmd.CheckoutSID, cmd.AccountEmail)
	if err != nil {
		return nil, err
	}

	input := checkout.DetailsInput{
		Phone: cmd.Phone,
		Card: vo.CardDetails{
			HolderName: cmd.CardName,
			Number:     cmd.CardNumber,
			Expiry:     cmd.CardExpiry,
			CVV:        cmd.CardCVV,
		},
		Billing: vo.BillingDetails{
			FullName:   cmd.FullName,
			Address:    cmd.Address,
			City:       cmd.City,
			Country:    cmd.Country,
			PostalCode: cmd.PostalCode,
			Email:      cmd.Email,
		},
		WalletEmail:   cmd.WalletEmail,
		CryptoPayload: cmd.CryptoPayload,
	}

	fieldErrs, err := draft.SubmitDetails(input)
	if err != nil {
		return nil, err
	}
	if err := uc.draftStore.Save(ctx, draft); err != nil {
		uc.logger.Errorw("failed to save checkout draft", "error", err, "sid", draft.SID())
		return nil, fmt.Errorf("failed to save checkout draft: %w", err)
	}

	if len(fieldErrs) > 0 {
		uc.logger.Debugw("checkout details rejected", "sid", draft.SID(), "fields", len(fieldErrs))
	}
	return dto.NewCheckoutDTO(draft, amountFor(uc.catalog, draft)), nil
}
