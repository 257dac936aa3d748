package usecases

import (
	"context"
)

// ProjectionCache maintains the fast-path "is this account premium" answer
// used by the feature guard. It is a read-through projection: a miss falls
// back to the evaluator, so every write here is best-effort.
type ProjectionCache interface {
	// SetPremium records the premium answer for an account.
	SetPremium(ctx context.Context, accountEmail string, premium bool) error

	// Invalidate drops the cached answer, forcing re-evaluation.
	Invalidate(ctx context.Context, accountEmail string) error
}
