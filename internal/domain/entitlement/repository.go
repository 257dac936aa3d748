package entitlement

import (
	"context"
)

// EntitlementRepository persists entitlement records.
//
// ReplaceActive is the single write path for activation: it deactivates any
// currently active record for the account and creates the new one as one
// logical step, preserving the one-active-record-per-account invariant.
type EntitlementRepository interface {
	GetActiveByEmail(ctx context.Context, accountEmail string) (*Entitlement, error)
	GetBySID(ctx context.Context, sid string) (*Entitlement, error)
	ListByEmail(ctx context.Context, accountEmail string) ([]*Entitlement, error)
	ReplaceActive(ctx context.Context, record *Entitlement) error
	Update(ctx context.Context, record *Entitlement) error

	// FindElapsedTrials returns active trial records whose trial end is at or
	// before the given cutoff. Used by the idle expiry sweep.
	FindElapsedTrials(ctx context.Context, limit int) ([]*Entitlement, error)
}

// TrialUsageRepository persists the trial usage ledger.
type TrialUsageRepository interface {
	Exists(ctx context.Context, accountEmail, planID string) (bool, error)
	Record(ctx context.Context, usage *TrialUsage) error
	ListByEmail(ctx context.Context, accountEmail string) ([]*TrialUsage, error)
}
