package checkout

import "errors"

var (
	ErrDraftNotFound = errors.New("checkout session not found")
	ErrDraftExpired  = errors.New("checkout session expired")
	ErrNotOwner      = errors.New("checkout session belongs to another account")
)
