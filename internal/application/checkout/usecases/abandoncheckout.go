package usecases

import (
	"context"

	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type AbandonCheckoutCommand struct {
	CheckoutSID  string
	AccountEmail string
}

// AbandonCheckoutUseCase discards a session without settling. Nothing is
// persisted, so abandoning is just dropping the draft.
type AbandonCheckoutUseCase struct {
	draftStore DraftStore
	logger     logger.Interface
}

func NewAbandonCheckoutUseCase(draftStore DraftStore, logger logger.Interface) *AbandonCheckoutUseCase {
	return &AbandonCheckoutUseCase{draftStore: draftStore, logger: logger}
}

func (uc *AbandonCheckoutUseCase) Execute(ctx context.Context, cmd AbandonCheckoutCommand) error {
	draft, err := loadOwnedDraft(ctx, uc.draftStore, cmd.CheckoutSID, cmd.AccountEmail)
	if err != nil {
		return err
	}

	if err := uc.draftStore.Delete(ctx, draft.SID()); err != nil {
		uc.logger.Warnw("failed to delete abandoned checkout draft", "error", err, "sid", draft.SID())
		return err
	}

	uc.logger.Debugw("checkout abandoned", "sid", draft.SID())
	return nil
}
