package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/mappers"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/models"
	apperrors "github.com/kazihub-inc/kazihub/internal/shared/errors"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type TrialUsageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TrialUsageMapper
	logger logger.Interface
}

func NewTrialUsageRepository(
	db *gorm.DB,
	logger logger.Interface,
) entitlement.TrialUsageRepository {
	return &TrialUsageRepositoryImpl{
		db:     db,
		mapper: mappers.NewTrialUsageMapper(),
		logger: logger,
	}
}

func (r *TrialUsageRepositoryImpl) Exists(ctx context.Context, accountEmail, planID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.TrialUsageModel{}).
		Where("account_email = ? AND plan_id = ?", accountEmail, planID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check trial usage", "account_email", accountEmail, "plan_id", planID, "error", err)
		return false, fmt.Errorf("failed to check trial usage: %w", err)
	}

	return count > 0, nil
}

func (r *TrialUsageRepositoryImpl) Record(ctx context.Context, usage *entitlement.TrialUsage) error {
	model := r.mapper.ToModel(usage)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// The unique (account_email, plan_id) index backstops concurrent
		// trial starts for the same plan.
		if apperrors.IsDuplicateError(err) {
			return entitlement.ErrTrialAlreadyUsed
		}
		r.logger.Errorw("failed to record trial usage", "account_email", usage.AccountEmail(), "error", err)
		return fmt.Errorf("failed to record trial usage: %w", err)
	}

	if usage.ID() == 0 {
		if err := usage.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set trial usage ID: %w", err)
		}
	}

	return nil
}

func (r *TrialUsageRepositoryImpl) ListByEmail(ctx context.Context, accountEmail string) ([]*entitlement.TrialUsage, error) {
	var ms []*models.TrialUsageModel

	err := r.db.WithContext(ctx).
		Where("account_email = ?", accountEmail).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		r.logger.Errorw("failed to list trial usages", "account_email", accountEmail, "error", err)
		return nil, fmt.Errorf("failed to list trial usages: %w", err)
	}

	return r.mapper.ToEntities(ms)
}
