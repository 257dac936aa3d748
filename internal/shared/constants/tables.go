package constants

// Database table names
const (
	TableEntitlements     = "entitlements"
	TableTrialUsages      = "trial_usages"
	TableCyclePreferences = "cycle_preferences"
)
