package entitlement

import (
	"fmt"
	"time"
)

// TrialUsage is a ledger entry recording that a trial was ever started for a
// (account, plan) pair. Its presence permanently blocks a second trial for
// that plan, regardless of the entitlement record's current state. Entries
// are written once and never mutated.
type TrialUsage struct {
	id           uint
	accountEmail string
	planID       string
	startedAt    time.Time
	endsAt       time.Time
	createdAt    time.Time
}

// NewTrialUsage records the start of a trial.
func NewTrialUsage(accountEmail, planID string, startedAt, endsAt time.Time) (*TrialUsage, error) {
	if accountEmail == "" {
		return nil, fmt.Errorf("account email is required")
	}
	if planID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if endsAt.Before(startedAt) {
		return nil, fmt.Errorf("trial end must be after trial start")
	}

	return &TrialUsage{
		accountEmail: accountEmail,
		planID:       planID,
		startedAt:    startedAt.UTC(),
		endsAt:       endsAt.UTC(),
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructTrialUsage rebuilds a ledger entry from persistence.
func ReconstructTrialUsage(id uint, accountEmail, planID string, startedAt, endsAt, createdAt time.Time) (*TrialUsage, error) {
	if id == 0 {
		return nil, fmt.Errorf("trial usage ID cannot be zero")
	}
	if accountEmail == "" {
		return nil, fmt.Errorf("account email is required")
	}
	if planID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}

	return &TrialUsage{
		id:           id,
		accountEmail: accountEmail,
		planID:       planID,
		startedAt:    startedAt,
		endsAt:       endsAt,
		createdAt:    createdAt,
	}, nil
}

// ID returns the ledger entry ID
func (t *TrialUsage) ID() uint {
	return t.id
}

// SetID sets the ledger entry ID (for persistence layer)
func (t *TrialUsage) SetID(newID uint) error {
	if t.id != 0 {
		return fmt.Errorf("trial usage ID is already set")
	}
	if newID == 0 {
		return fmt.Errorf("trial usage ID cannot be zero")
	}
	t.id = newID
	return nil
}

// AccountEmail returns the account the trial belonged to
func (t *TrialUsage) AccountEmail() string {
	return t.accountEmail
}

// PlanID returns the plan the trial was for
func (t *TrialUsage) PlanID() string {
	return t.planID
}

// StartedAt returns when the trial started
func (t *TrialUsage) StartedAt() time.Time {
	return t.startedAt
}

// EndsAt returns when the trial was scheduled to end
func (t *TrialUsage) EndsAt() time.Time {
	return t.endsAt
}

// CreatedAt returns when the ledger entry was written
func (t *TrialUsage) CreatedAt() time.Time {
	return t.createdAt
}
