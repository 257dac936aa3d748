package usecases

import (
	"context"

	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	"github.com/kazihub-inc/kazihub/internal/domain/plan"
)

// loadOwnedDraft fetches a draft and checks it belongs to the caller.
func loadOwnedDraft(ctx context.Context, store DraftStore, sid, accountEmail string) (*checkout.Draft, error) {
	draft, err := store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if draft.AccountEmail() != accountEmail {
		return nil, checkout.ErrNotOwner
	}
	return draft, nil
}

// amountFor resolves the session's price from the catalog. A draft always
// references a known plan, so a miss only happens if the catalog shrank.
func amountFor(catalog *plan.Catalog, draft *checkout.Draft) int64 {
	p, err := catalog.Get(draft.PlanID())
	if err != nil {
		return 0
	}
	return p.PriceCents(draft.Cycle())
}
