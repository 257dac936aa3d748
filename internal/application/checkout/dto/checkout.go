package dto

import (
	"time"

	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
)

// CheckoutDTO is the transport shape of a checkout session.
type CheckoutDTO struct {
	SID         string            `json:"sid"`
	PlanID      string            `json:"plan_id"`
	Cycle       string            `json:"cycle"`
	State       string            `json:"state"`
	Method      string            `json:"method,omitempty"`
	AmountCents int64             `json:"amount_cents"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	LastError   string            `json:"last_error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewCheckoutDTO converts a draft for transport. amountCents is resolved by
// the caller from the plan catalog.
func NewCheckoutDTO(d *checkout.Draft, amountCents int64) *CheckoutDTO {
	out := &CheckoutDTO{
		SID:         d.SID(),
		PlanID:      d.PlanID(),
		Cycle:       d.Cycle().String(),
		State:       d.State().String(),
		AmountCents: amountCents,
		LastError:   d.LastError(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
	}
	if !d.Method().IsZero() {
		out.Method = d.Method().String()
	}
	if errs := d.FieldErrors(); len(errs) > 0 {
		out.FieldErrors = errs
	}
	return out
}
