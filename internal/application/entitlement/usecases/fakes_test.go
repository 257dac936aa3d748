package usecases

import (
	"context"
	"sync"

	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
)

// fakeEntitlementRepo is an in-memory EntitlementRepository keyed by account
// email, mirroring the one-active-record invariant of the real store.
type fakeEntitlementRepo struct {
	mu     sync.Mutex
	nextID uint
	all    []*entitlement.Entitlement
}

func newFakeEntitlementRepo() *fakeEntitlementRepo {
	return &fakeEntitlementRepo{nextID: 1}
}

func (r *fakeEntitlementRepo) GetActiveByEmail(_ context.Context, accountEmail string) (*entitlement.Entitlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.all {
		if e.AccountEmail() == accountEmail && e.Active() {
			return e, nil
		}
	}
	return nil, entitlement.ErrNotFound
}

func (r *fakeEntitlementRepo) GetBySID(_ context.Context, sid string) (*entitlement.Entitlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.all {
		if e.SID() == sid {
			return e, nil
		}
	}
	return nil, entitlement.ErrNotFound
}

func (r *fakeEntitlementRepo) ListByEmail(_ context.Context, accountEmail string) ([]*entitlement.Entitlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entitlement.Entitlement
	for _, e := range r.all {
		if e.AccountEmail() == accountEmail {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntitlementRepo) ReplaceActive(ctx context.Context, record *entitlement.Entitlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.all {
		if e.AccountEmail() == record.AccountEmail() && e.Active() {
			e.Deactivate(record.Since())
		}
	}
	if record.ID() == 0 {
		_ = record.SetID(r.nextID)
		r.nextID++
	}
	r.all = append(r.all, record)
	return nil
}

func (r *fakeEntitlementRepo) Update(_ context.Context, _ *entitlement.Entitlement) error {
	return nil
}

func (r *fakeEntitlementRepo) FindElapsedTrials(_ context.Context, limit int) ([]*entitlement.Entitlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entitlement.Entitlement
	for _, e := range r.all {
		if e.Active() && e.IsTrial() && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTrialUsageRepo is an in-memory trial usage ledger.
type fakeTrialUsageRepo struct {
	mu        sync.Mutex
	nextID    uint
	entries   []*entitlement.TrialUsage
	recordErr error
}

func newFakeTrialUsageRepo() *fakeTrialUsageRepo {
	return &fakeTrialUsageRepo{nextID: 1}
}

func (r *fakeTrialUsageRepo) Exists(_ context.Context, accountEmail, planID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.entries {
		if u.AccountEmail() == accountEmail && u.PlanID() == planID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTrialUsageRepo) Record(_ context.Context, usage *entitlement.TrialUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recordErr != nil {
		return r.recordErr
	}
	if usage.ID() == 0 {
		_ = usage.SetID(r.nextID)
		r.nextID++
	}
	r.entries = append(r.entries, usage)
	return nil
}

func (r *fakeTrialUsageRepo) ListByEmail(_ context.Context, accountEmail string) ([]*entitlement.TrialUsage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entitlement.TrialUsage
	for _, u := range r.entries {
		if u.AccountEmail() == accountEmail {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeProjectionCache records premium projection writes.
type fakeProjectionCache struct {
	mu          sync.Mutex
	premium     map[string]bool
	invalidated []string
}

func newFakeProjectionCache() *fakeProjectionCache {
	return &fakeProjectionCache{premium: make(map[string]bool)}
}

func (c *fakeProjectionCache) SetPremium(_ context.Context, accountEmail string, premium bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.premium[accountEmail] = premium
	return nil
}

func (c *fakeProjectionCache) Invalidate(_ context.Context, accountEmail string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.premium, accountEmail)
	c.invalidated = append(c.invalidated, accountEmail)
	return nil
}

// fakePublisher collects published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *fakePublisher) Publish(event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) PublishAll(batch []events.DomainEvent) error {
	for _, e := range batch {
		if err := p.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

func (p *fakePublisher) byType(eventType string) []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.DomainEvent
	for _, e := range p.events {
		if e.GetEventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}
