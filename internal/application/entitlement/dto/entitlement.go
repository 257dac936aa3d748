package dto

import (
	"time"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
)

// EntitlementDTO is the transport shape of an entitlement record.
type EntitlementDTO struct {
	SID          string     `json:"sid"`
	AccountEmail string     `json:"account_email"`
	PlanID       string     `json:"plan_id"`
	Since        time.Time  `json:"since"`
	Active       bool       `json:"active"`
	IsTrial      bool       `json:"is_trial"`
	TrialEnd     *time.Time `json:"trial_end,omitempty"`
	DaysLeft     int        `json:"days_left,omitempty"`
	Method       string     `json:"method,omitempty"`
	ExpiredAt    *time.Time `json:"expired_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// NewEntitlementDTO converts a domain record for transport. daysLeft is
// computed against now so the countdown is never stale.
func NewEntitlementDTO(e *entitlement.Entitlement, now time.Time) *EntitlementDTO {
	d := &EntitlementDTO{
		SID:          e.SID(),
		AccountEmail: e.AccountEmail(),
		PlanID:       e.PlanID(),
		Since:        e.Since(),
		Active:       e.Active(),
		IsTrial:      e.IsTrial(),
		TrialEnd:     e.TrialEnd(),
		Method:       e.Method(),
		ExpiredAt:    e.ExpiredAt(),
		CancelledAt:  e.CancelledAt(),
	}
	if e.IsTrial() && e.Active() {
		d.DaysLeft = e.TrialDaysLeft(now)
	}
	return d
}

// NewEntitlementDTOs converts a record list.
func NewEntitlementDTOs(records []*entitlement.Entitlement, now time.Time) []*EntitlementDTO {
	out := make([]*EntitlementDTO, 0, len(records))
	for _, e := range records {
		out = append(out, NewEntitlementDTO(e, now))
	}
	return out
}
