package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/models"
)

type EntitlementMapper interface {
	ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error)
	ToModel(entity *entitlement.Entitlement) (*models.EntitlementModel, error)
	ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error)
}

type EntitlementMapperImpl struct{}

func NewEntitlementMapper() EntitlementMapper {
	return &EntitlementMapperImpl{}
}

func (m *EntitlementMapperImpl) ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entity, err := entitlement.ReconstructEntitlement(entitlement.EntitlementReconstructParams{
		ID:           model.ID,
		SID:          model.SID,
		AccountEmail: model.AccountEmail,
		PlanID:       model.PlanID,
		Since:        model.Since,
		Active:       model.Active,
		IsTrial:      model.IsTrial,
		TrialEnd:     model.TrialEnd,
		Method:       model.Method,
		ExpiredAt:    model.ExpiredAt,
		CancelledAt:  model.CancelledAt,
		Metadata:     metadata,
		Version:      model.Version,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement entity: %w", err)
	}

	return entity, nil
}

func (m *EntitlementMapperImpl) ToModel(entity *entitlement.Entitlement) (*models.EntitlementModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadataJSON datatypes.JSON
	if metadata := entity.Metadata(); len(metadata) > 0 {
		data, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = data
	}

	return &models.EntitlementModel{
		ID:           entity.ID(),
		SID:          entity.SID(),
		AccountEmail: entity.AccountEmail(),
		PlanID:       entity.PlanID(),
		Since:        entity.Since(),
		Active:       entity.Active(),
		IsTrial:      entity.IsTrial(),
		TrialEnd:     entity.TrialEnd(),
		Method:       entity.Method(),
		ExpiredAt:    entity.ExpiredAt(),
		CancelledAt:  entity.CancelledAt(),
		Metadata:     metadataJSON,
		Version:      entity.Version(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *EntitlementMapperImpl) ToEntities(ms []*models.EntitlementModel) ([]*entitlement.Entitlement, error) {
	entities := make([]*entitlement.Entitlement, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
