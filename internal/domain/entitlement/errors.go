package entitlement

import "errors"

var (
	ErrNotFound         = errors.New("entitlement not found")
	ErrNotActive        = errors.New("entitlement not active")
	ErrNotATrial        = errors.New("entitlement is not a trial")
	ErrTrialAlreadyUsed = errors.New("trial already used for this plan")
	ErrNotAuthenticated = errors.New("account not authenticated")
)
