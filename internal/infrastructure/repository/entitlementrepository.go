package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/mappers"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/models"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EntitlementMapper
	logger logger.Interface
}

func NewEntitlementRepository(
	db *gorm.DB,
	logger logger.Interface,
) entitlement.EntitlementRepository {
	return &EntitlementRepositoryImpl{
		db:     db,
		mapper: mappers.NewEntitlementMapper(),
		logger: logger,
	}
}

func (r *EntitlementRepositoryImpl) GetActiveByEmail(ctx context.Context, accountEmail string) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel

	err := r.db.WithContext(ctx).
		Where("account_email = ? AND active = ?", accountEmail, true).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrNotFound
		}
		r.logger.Errorw("failed to get active entitlement", "account_email", accountEmail, "error", err)
		return nil, fmt.Errorf("failed to get active entitlement: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *EntitlementRepositoryImpl) GetBySID(ctx context.Context, sid string) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel

	if err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrNotFound
		}
		r.logger.Errorw("failed to get entitlement by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *EntitlementRepositoryImpl) ListByEmail(ctx context.Context, accountEmail string) ([]*entitlement.Entitlement, error) {
	var ms []*models.EntitlementModel

	err := r.db.WithContext(ctx).
		Where("account_email = ?", accountEmail).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		r.logger.Errorw("failed to list entitlements", "account_email", accountEmail, "error", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}

	return r.mapper.ToEntities(ms)
}

// ReplaceActive deactivates any active record for the account and inserts
// the new one in a single transaction, so the one-active-record invariant
// holds even under concurrent checkouts.
func (r *EntitlementRepositoryImpl) ReplaceActive(ctx context.Context, record *entitlement.Entitlement) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		r.logger.Errorw("failed to map entitlement entity to model", "error", err)
		return fmt.Errorf("failed to map entitlement entity: %w", err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&models.EntitlementModel{}).
			Where("account_email = ? AND active = ?", record.AccountEmail(), true).
			Updates(map[string]interface{}{
				"active":     false,
				"updated_at": now,
				"version":    gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to deactivate prior entitlements: %w", res.Error)
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create entitlement: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to replace active entitlement",
			"account_email", record.AccountEmail(),
			"error", err,
		)
		return err
	}

	if record.ID() == 0 {
		if err := record.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set entitlement ID: %w", err)
		}
	}

	r.logger.Infow("entitlement activated",
		"id", model.ID,
		"sid", model.SID,
		"account_email", model.AccountEmail,
		"plan_id", model.PlanID,
		"is_trial", model.IsTrial,
	)
	return nil
}

func (r *EntitlementRepositoryImpl) Update(ctx context.Context, record *entitlement.Entitlement) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		r.logger.Errorw("failed to map entitlement entity to model", "error", err)
		return fmt.Errorf("failed to map entitlement entity: %w", err)
	}

	// Optimistic locking: the WHERE clause pins the version the aggregate
	// was loaded at (the aggregate bumped it on mutation).
	res := r.db.WithContext(ctx).
		Model(&models.EntitlementModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"active":       model.Active,
			"expired_at":   model.ExpiredAt,
			"cancelled_at": model.CancelledAt,
			"metadata":     model.Metadata,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})
	if res.Error != nil {
		r.logger.Errorw("failed to update entitlement", "id", model.ID, "error", res.Error)
		return fmt.Errorf("failed to update entitlement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entitlement %d was modified concurrently", model.ID)
	}

	return nil
}

func (r *EntitlementRepositoryImpl) FindElapsedTrials(ctx context.Context, limit int) ([]*entitlement.Entitlement, error) {
	var ms []*models.EntitlementModel

	err := r.db.WithContext(ctx).
		Where("active = ? AND is_trial = ? AND trial_end <= ?", true, true, time.Now().UTC()).
		Order("trial_end ASC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		r.logger.Errorw("failed to find elapsed trials", "error", err)
		return nil, fmt.Errorf("failed to find elapsed trials: %w", err)
	}

	return r.mapper.ToEntities(ms)
}
