package plan

import "context"

// CyclePreferenceRepository persists the billing-cycle view preference per
// account. The preference only affects which price the catalog shows; it
// never changes entitlement state.
type CyclePreferenceRepository interface {
	Get(ctx context.Context, accountEmail string) (BillingCycle, error)
	Set(ctx context.Context, accountEmail string, cycle BillingCycle) error
}
