package dto

// Denial reasons returned by the access evaluator. An allowed decision
// carries an empty reason.
const (
	ReasonNoAccount      = "no_account"
	ReasonNoSubscription = "no_subscription"
	ReasonTrialExpired   = "trial_expired"
)

// AccessDecision is the evaluator's answer for one account at one instant.
type AccessDecision struct {
	Allowed       bool   `json:"allowed"`
	Reason        string `json:"reason,omitempty"`
	PlanID        string `json:"plan_id,omitempty"`
	IsTrialActive bool   `json:"is_trial_active"`
	DaysLeft      int    `json:"days_left"`
	ExpiredPlanID string `json:"expired_plan_id,omitempty"`
}

// Denied builds a denial with the given reason.
func Denied(reason string) *AccessDecision {
	return &AccessDecision{Allowed: false, Reason: reason}
}
