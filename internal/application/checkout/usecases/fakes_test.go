package usecases

import (
	"context"
	"errors"
	"sync"

	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	"github.com/kazihub-inc/kazihub/internal/domain/entitlement"
	"github.com/kazihub-inc/kazihub/internal/domain/shared/events"
)

// fakeDraftStore is an in-memory DraftStore.
type fakeDraftStore struct {
	mu     sync.Mutex
	drafts map[string]*checkout.Draft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string]*checkout.Draft)}
}

func (s *fakeDraftStore) Get(_ context.Context, sid string) (*checkout.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sid]
	if !ok {
		return nil, checkout.ErrDraftNotFound
	}
	return d, nil
}

func (s *fakeDraftStore) Save(_ context.Context, draft *checkout.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.SID()] = draft
	return nil
}

func (s *fakeDraftStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sid)
	return nil
}

// fakeGateway settles everything unless told to fail.
type fakeGateway struct {
	mu       sync.Mutex
	failWith error
	requests []SettlementRequest
}

func (g *fakeGateway) Settle(_ context.Context, req SettlementRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.failWith
}

func (g *fakeGateway) failNext(msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failWith = errors.New(msg)
}

func (g *fakeGateway) succeed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failWith = nil
}

// fakeEntitlementRepo covers the subset ConfirmCheckout touches.
type fakeEntitlementRepo struct {
	mu         sync.Mutex
	all        []*entitlement.Entitlement
	replaceErr error
}

func (r *fakeEntitlementRepo) failReplaceWith(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceErr = errors.New(msg)
}

func (r *fakeEntitlementRepo) replaceOK() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replaceErr = nil
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

func (r *fakeEntitlementRepo) ReplaceActive(_ context.Context, record *entitlement.Entitlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return r.replaceErr
	}
	for _, e := range r.all {
		if e.AccountEmail() == record.AccountEmail() && e.Active() {
			e.Deactivate(record.Since())
		}
	}
	r.all = append(r.all, record)
	return nil
}

func (r *fakeEntitlementRepo) Update(_ context.Context, _ *entitlement.Entitlement) error {
	return nil
}

func (r *fakeEntitlementRepo) FindElapsedTrials(_ context.Context, _ int) ([]*entitlement.Entitlement, error) {
	return nil, nil
}

// fakeProjectionCache records projection writes.
type fakeProjectionCache struct {
	mu      sync.Mutex
	premium map[string]bool
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
