package mappers

import (
	"fmt"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/models"
)

type TrialUsageMapper interface {
	ToEntity(model *models.TrialUsageModel) (*entitlement.TrialUsage, error)
	ToModel(entity *entitlement.TrialUsage) *models.TrialUsageModel
	ToEntities(models []*models.TrialUsageModel) ([]*entitlement.TrialUsage, error)
}

type TrialUsageMapperImpl struct{}

func NewTrialUsageMapper() TrialUsageMapper {
	return &TrialUsageMapperImpl{}
}

func (m *TrialUsageMapperImpl) ToEntity(model *models.TrialUsageModel) (*entitlement.TrialUsage, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := entitlement.ReconstructTrialUsage(
		model.ID,
		model.AccountEmail,
		model.PlanID,
		model.StartedAt,
		model.EndsAt,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct trial usage entity: %w", err)
	}
	return entity, nil
}

func (m *TrialUsageMapperImpl) ToModel(entity *entitlement.TrialUsage) *models.TrialUsageModel {
	if entity == nil {
		return nil
	}
	return &models.TrialUsageModel{
		ID:           entity.ID(),
		AccountEmail: entity.AccountEmail(),
		PlanID:       entity.PlanID(),
		StartedAt:    entity.StartedAt(),
		EndsAt:       entity.EndsAt(),
		CreatedAt:    entity.CreatedAt(),
	}
}

func (m *TrialUsageMapperImpl) ToEntities(ms []*models.TrialUsageModel) ([]*entitlement.TrialUsage, error) {
	entities := make([]*entitlement.TrialUsage, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
