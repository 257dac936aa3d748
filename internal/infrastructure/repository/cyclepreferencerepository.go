package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kazihub-inc/kazihub/internal/domain/plan"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/models"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type CyclePreferenceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCyclePreferenceRepository(
	db *gorm.DB,
	logger logger.Interface,
) plan.CyclePreferenceRepository {
	return &CyclePreferenceRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Get returns the stored preference, defaulting to monthly when the account
// has never set one.
func (r *CyclePreferenceRepositoryImpl) Get(ctx context.Context, accountEmail string) (plan.BillingCycle, error) {
	var model models.CyclePreferenceModel

	err := r.db.WithContext(ctx).
		Where("account_email = ?", accountEmail).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return plan.CycleMonthly, nil
		}
		r.logger.Errorw("failed to load cycle preference", "account_email", accountEmail, "error", err)
		return "", fmt.Errorf("failed to load cycle preference: %w", err)
	}

	cycle, err := plan.NewBillingCycle(model.Cycle)
	if err != nil {
		// A bad stored value falls back to the default rather than breaking
		// the plan page.
		r.logger.Warnw("stored cycle preference invalid, using default", "account_email", accountEmail, "cycle", model.Cycle)
		return plan.CycleMonthly, nil
	}

	return cycle, nil
}

func (r *CyclePreferenceRepositoryImpl) Set(ctx context.Context, accountEmail string, cycle plan.BillingCycle) error {
	model := models.CyclePreferenceModel{
		AccountEmail: accountEmail,
		Cycle:        cycle.String(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_email"}},
			DoUpdates: clause.AssignmentColumns([]string{"cycle", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to save cycle preference", "account_email", accountEmail, "error", err)
		return fmt.Errorf("failed to save cycle preference: %w", err)
	}

	return nil
}
