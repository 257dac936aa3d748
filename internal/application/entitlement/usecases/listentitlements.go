package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kazihub-inc/kazihub/internal/application/entitlement/dto"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type ListEntitlementsCommand struct {
	AccountEmail string
}

// ListEntitlementsUseCase returns the account's entitlement history, newest
// first, including expired and cancelled records.
type ListEntitlementsUseCase struct {
	entitlementRepo entitlement.EntitlementRepository
	logger          logger.Interface
	now             func() time.Time
}

func NewListEntitlementsUseCase(
	entitlementRepo entitlement.EntitlementRepository,
	logger logger.Interface,
) *ListEntitlementsUseCase {
	return &ListEntitlementsUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *ListEntitlementsUseCase) Execute(ctx context.Context, cmd ListEntitlementsCommand) ([]*dto.EntitlementDTO, error) {
	if cmd.AccountEmail == "" {
		return nil, entitlement.ErrNotAuthenticated
	}

	records, err := uc.entitlementRepo.ListByEmail(ctx, cmd.AccountEmail)
	if err != nil {
		uc.logger.Errorw("failed to list entitlements", "error", err, "account_email", cmd.AccountEmail)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}

	return dto.NewEntitlementDTOs(records, uc.now()), nil
}
