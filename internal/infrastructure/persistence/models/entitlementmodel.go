package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/kazihub-inc/kazihub/internal/shared/constants"
)

// EntitlementModel represents the database persistence model for entitlements
// This is the anti-corruption layer between domain and database
type EntitlementModel struct {
	ID           uint      `gorm:"primarykey"`
	SID          string    `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: ent_xxx"`
	AccountEmail string    `gorm:"not null;size:255;index:idx_account_active,priority:1"`
	PlanID       string    `gorm:"not null;size:50;index:idx_plan"`
	Since        time.Time `gorm:"not null"`
	Active       bool      `gorm:"not null;default:false;index:idx_account_active,priority:2"`
	IsTrial      bool      `gorm:"not null;default:false"`
	TrialEnd     *time.Time `gorm:"index:idx_trial_end"`
	Method       string    `gorm:"size:30"`
	ExpiredAt    *time.Time
	CancelledAt  *time.Time
	Metadata     datatypes.JSON
	Version      int `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (EntitlementModel) TableName() string {
	return constants.TableEntitlements
}

// BeforeCreate hook for GORM
func (e *EntitlementModel) BeforeCreate(tx *gorm.DB) error {
	if e.Version == 0 {
		e.Version = 1
	}
	return nil
}
