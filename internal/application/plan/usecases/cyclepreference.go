package usecases

import (
	"context"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type SetCyclePreferenceCommand struct {
	AccountEmail string
	Cycle        string
}

// CyclePreferenceUseCase reads and writes the billing-cycle view preference.
type CyclePreferenceUseCase struct {
	prefs  plan.CyclePreferenceRepository
	logger logger.Interface
}

func NewCyclePreferenceUseCase(
	prefs plan.CyclePreferenceRepository,
	logger logger.Interface,
) *CyclePreferenceUseCase {
	return &CyclePreferenceUseCase{
		prefs:  prefs,
		logger: logger,
	}
}

func (uc *CyclePreferenceUseCase) Get(ctx context.Context, accountEmail string) (string, error) {
	if accountEmail == "" {
		return "", entitlement.ErrNotAuthenticated
	}

	cycle, err := uc.prefs.Get(ctx, accountEmail)
	if err != nil {
		return "", err
	}
	return cycle.String(), nil
}

func (uc *CyclePreferenceUseCase) Set(ctx context.Context, cmd SetCyclePreferenceCommand) error {
	if cmd.AccountEmail == "" {
		return entitlement.ErrNotAuthenticated
	}

	cycle, err := plan.NewBillingCycle(cmd.Cycle)
	if err != nil {
		return err
	}

	if err := uc.prefs.Set(ctx, cmd.AccountEmail, cycle); err != nil {
		return err
	}

	uc.logger.Debugw("cycle preference saved", "account_email", cmd.AccountEmail, "cycle", cycle)
	return nil
}
