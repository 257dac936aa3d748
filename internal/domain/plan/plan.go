// Package plan defines the static plan catalog. Plans are build-time
// constants: they are never persisted per-account, only referenced by
// entitlement records through their identifier.
package plan

import "fmt"

// BillingCycle selects between the monthly and annual price of a plan.
// It is a display preference, not an entitlement property.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleAnnual  BillingCycle = "annual"
)

// IsValid checks if the billing cycle is valid
func (c BillingCycle) IsValid() bool {
	return c == CycleMonthly || c == CycleAnnual
}

// String returns the string representation of the billing cycle
func (c BillingCycle) String() string {
	return string(c)
}

// NewBillingCycle creates a BillingCycle from string
func NewBillingCycle(value string) (BillingCycle, error) {
	c := BillingCycle(value)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid billing cycle: %s", value)
	}
	return c, nil
}

// Audience tags the user segment a plan targets.
type Audience string

const (
	AudienceWorker   Audience = "worker"
	AudienceClient   Audience = "client"
	AudienceBusiness Audience = "business"
)

// Plan is a static catalog entry. Immutable after construction.
type Plan struct {
	id           string
	title        string
	monthlyCents int64
	annualCents  int64
	audience     Audience
	benefits     []string
}

// NewPlan creates a catalog entry. Used only by the build-time catalog.
func NewPlan(id, title string, monthlyCents, annualCents int64, audience Audience, benefits []string) (*Plan, error) {
	if id == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if title == "" {
		return nil, fmt.Errorf("plan title is required")
	}
	if monthlyCents <= 0 || annualCents <= 0 {
		return nil, fmt.Errorf("plan prices must be positive")
	}
	if len(benefits) == 0 {
		return nil, fmt.Errorf("plan must declare at least one benefit")
	}

	b := make([]string, len(benefits))
	copy(b, benefits)

	return &Plan{
		id:           id,
		title:        title,
		monthlyCents: monthlyCents,
		annualCents:  annualCents,
		audience:     audience,
		benefits:     b,
	}, nil
}

// ID returns the plan identifier
func (p *Plan) ID() string {
	return p.id
}

// Title returns the human-readable plan title
func (p *Plan) Title() string {
	return p.title
}

// MonthlyCents returns the monthly price in cents
func (p *Plan) MonthlyCents() int64 {
	return p.monthlyCents
}

// AnnualCents returns the annual price in cents
func (p *Plan) AnnualCents() int64 {
	return p.annualCents
}

// PriceCents returns the price for the given billing cycle
func (p *Plan) PriceCents(cycle BillingCycle) int64 {
	if cycle == CycleAnnual {
		return p.annualCents
	}
	return p.monthlyCents
}

// Audience returns the target audience tag
func (p *Plan) Audience() Audience {
	return p.audience
}

// Benefits returns the ordered benefit list
func (p *Plan) Benefits() []string {
	b := make([]string, len(p.benefits))
	copy(b, p.benefits)
	return b
}
