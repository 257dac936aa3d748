package models

import (
	"time"

	"github.com/kazihub-inc/kazihub/internal/shared/constants"
)

// CyclePreferenceModel persists the billing-cycle view preference, one row
// per account, upserted in place.
type CyclePreferenceModel struct {
	ID           uint   `gorm:"primarykey"`
	AccountEmail string `gorm:"not null;size:255;uniqueIndex:uk_cycle_pref_account"`
	Cycle        string `gorm:"not null;size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (CyclePreferenceModel) TableName() string {
	return constants.TableCyclePreferences
}
