package migration

import (
	"github.com/kazihub-inc/kazihub/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.EntitlementModel{},
		&models.TrialUsageModel{},
		&models.CyclePreferenceModel{},
	}
}
