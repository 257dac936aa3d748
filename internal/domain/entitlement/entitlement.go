// Package entitlement holds the aggregate that decides whether an account
// currently has paid or trial access, together with the trial usage ledger
// that permanently blocks repeated free trials.
package entitlement

import (
	"fmt"
	"math"
	"time"

	"github.com/kazihub-inc/kazihub/internal/shared/id"
)

// DefaultTrialDays is the length of a free trial.
const DefaultTrialDays = 3

// Entitlement is the aggregate root of the access model. At most one record
// per account email may be active at any time; activating a new record goes
// through EntitlementRepository.ReplaceActive which deactivates the prior one.
type Entitlement struct {
	id           uint
	sid          string
	accountEmail string
	planID       string
	since        time.Time
	active       bool
	isTrial      bool
	trialEnd     *time.Time
	method       string
	expiredAt    *time.Time
	cancelledAt  *time.Time
	metadata     map[string]interface{}
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewTrialEntitlement creates an active trial record. trialEnd is pinned to
// since + trialDays so the countdown and the hard cutoff always agree.
func NewTrialEntitlement(accountEmail, planID string, now time.Time, trialDays int) (*Entitlement, error) {
	if accountEmail == "" {
		return nil, fmt.Errorf("account email is required")
	}
	if planID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if trialDays <= 0 {
		trialDays = DefaultTrialDays
	}

	sid, err := id.NewEntitlementSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entitlement SID: %w", err)
	}

	now = now.UTC()
	trialEnd := now.Add(time.Duration(trialDays) * 24 * time.Hour)

	return &Entitlement{
		sid:          sid,
		accountEmail: accountEmail,
		planID:       planID,
		since:        now,
		active:       true,
		isTrial:      true,
		trialEnd:     &trialEnd,
		metadata:     make(map[string]interface{}),
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// NewPaidEntitlement creates an active non-trial record carrying the payment
// method that settled it.
func NewPaidEntitlement(accountEmail, planID, method string, now time.Time) (*Entitlement, error) {
	if accountEmail == "" {
		return nil, fmt.Errorf("account email is required")
	}
	if planID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if method == "" {
		return nil, fmt.Errorf("payment method is required")
	}

	sid, err := id.NewEntitlementSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entitlement SID: %w", err)
	}

	now = now.UTC()

	return &Entitlement{
		sid:          sid,
		accountEmail: accountEmail,
		planID:       planID,
		since:        now,
		active:       true,
		isTrial:      false,
		method:       method,
		metadata:     make(map[string]interface{}),
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// EntitlementReconstructParams carries the persisted state of an entitlement.
type EntitlementReconstructParams struct {
	ID           uint
	SID          string
	AccountEmail string
	PlanID       string
	Since        time.Time
	Active       bool
	IsTrial      bool
	TrialEnd     *time.Time
	Method       string
	ExpiredAt    *time.Time
	CancelledAt  *time.Time
	Metadata     map[string]interface{}
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReconstructEntitlement rebuilds an entitlement from persistence.
func ReconstructEntitlement(p EntitlementReconstructParams) (*Entitlement, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	if p.AccountEmail == "" {
		return nil, fmt.Errorf("account email is required")
	}
	if p.PlanID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if p.IsTrial && p.TrialEnd == nil {
		return nil, fmt.Errorf("trial entitlement must carry a trial end")
	}

	if p.Metadata == nil {
		p.Metadata = make(map[string]interface{})
	}

	return &Entitlement{
		id:           p.ID,
		sid:          p.SID,
		accountEmail: p.AccountEmail,
		planID:       p.PlanID,
		since:        p.Since,
		active:       p.Active,
		isTrial:      p.IsTrial,
		trialEnd:     p.TrialEnd,
		method:       p.Method,
		expiredAt:    p.ExpiredAt,
		cancelledAt:  p.CancelledAt,
		metadata:     p.Metadata,
		version:      p.Version,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}, nil
}

// ID returns the entitlement ID
func (e *Entitlement) ID() uint {
	return e.id
}

// SetID sets the entitlement ID (only for persistence layer use)
func (e *Entitlement) SetID(newID uint) error {
	if e.id != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if newID == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.id = newID
	return nil
}

// SID returns the Stripe-style identifier, e.g. "ent_xK9mP2vL3nQw"
func (e *Entitlement) SID() string {
	return e.sid
}

// AccountEmail returns the owning account's email
func (e *Entitlement) AccountEmail() string {
	return e.accountEmail
}

// PlanID returns the catalog plan identifier
func (e *Entitlement) PlanID() string {
	return e.planID
}

// Since returns the activation timestamp
func (e *Entitlement) Since() time.Time {
	return e.since
}

// Active reports whether this record currently grants access
func (e *Entitlement) Active() bool {
	return e.active
}

// IsTrial reports whether this record is a free trial
func (e *Entitlement) IsTrial() bool {
	return e.isTrial
}

// TrialEnd returns the trial cutoff, nil for paid records
func (e *Entitlement) TrialEnd() *time.Time {
	return e.trialEnd
}

// Method returns the payment method tag, empty for pure trials
func (e *Entitlement) Method() string {
	return e.method
}

// ExpiredAt returns when the trial was lazily expired, if it was
func (e *Entitlement) ExpiredAt() *time.Time {
	return e.expiredAt
}

// CancelledAt returns when the record was cancelled, if it was
func (e *Entitlement) CancelledAt() *time.Time {
	return e.cancelledAt
}

// Metadata returns the free-form metadata map
func (e *Entitlement) Metadata() map[string]interface{} {
	return e.metadata
}

// Version returns the aggregate version for optimistic locking
func (e *Entitlement) Version() int {
	return e.version
}

// CreatedAt returns when the record was created
func (e *Entitlement) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the record was last updated
func (e *Entitlement) UpdatedAt() time.Time {
	return e.updatedAt
}

// TrialDaysLeft returns the whole days remaining on a trial, rounding up so
// that any positive remainder still counts as a full day ("expires today"
// shows daysLeft=1). Zero or negative means the trial has hit its cutoff.
func (e *Entitlement) TrialDaysLeft(now time.Time) int {
	if !e.isTrial || e.trialEnd == nil {
		return 0
	}
	remaining := e.trialEnd.Sub(now)
	return int(math.Ceil(remaining.Hours() / 24))
}

// IsTrialElapsed reports whether a trial has reached or passed its cutoff.
func (e *Entitlement) IsTrialElapsed(now time.Time) bool {
	return e.isTrial && e.trialEnd != nil && e.TrialDaysLeft(now) <= 0
}

// Expire marks a trial record inactive and stamps expiredAt. Idempotent:
// expiring an already-expired record is a no-op.
func (e *Entitlement) Expire(now time.Time) error {
	if !e.isTrial {
		return ErrNotATrial
	}
	if !e.active {
		return nil
	}

	now = now.UTC()
	e.active = false
	e.expiredAt = &now
	e.updatedAt = now
	e.version++

	return nil
}

// Cancel deactivates the record immediately. There is no grace period;
// trial-end semantics do not apply to cancellation.
func (e *Entitlement) Cancel(now time.Time) error {
	if !e.active {
		return ErrNotActive
	}

	now = now.UTC()
	e.active = false
	e.cancelledAt = &now
	e.updatedAt = now
	e.version++

	return nil
}

// Deactivate marks the record inactive because a newer record replaced it.
func (e *Entitlement) Deactivate(now time.Time) {
	if !e.active {
		return
	}
	now = now.UTC()
	e.active = false
	e.updatedAt = now
	e.version++
}

// Validate performs domain-level validation
func (e *Entitlement) Validate() error {
	if e.accountEmail == "" {
		return fmt.Errorf("account email is required")
	}
	if e.planID == "" {
		return fmt.Errorf("plan ID is required")
	}
	if e.isTrial && e.trialEnd == nil {
		return fmt.Errorf("trial entitlement must carry a trial end")
	}
	if !e.isTrial && e.trialEnd != nil {
		return fmt.Errorf("non-trial entitlement must not carry a trial end")
	}
	return nil
}
