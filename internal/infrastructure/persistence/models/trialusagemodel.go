package models

import (
	"time"

	"github.com/kazihub-inc/kazihub/internal/shared/constants"
)

// TrialUsageModel persists the trial usage ledger. Rows are append-only;
// there is no soft delete because the ledger must never forget.
type TrialUsageModel struct {
	ID           uint      `gorm:"primarykey"`
	AccountEmail string    `gorm:"not null;size:255;uniqueIndex:idx_account_plan,priority:1"`
	PlanID       string    `gorm:"not null;size:50;uniqueIndex:idx_account_plan,priority:2"`
	StartedAt    time.Time `gorm:"not null"`
	EndsAt       time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM
func (TrialUsageModel) TableName() string {
	return constants.TableTrialUsages
}
