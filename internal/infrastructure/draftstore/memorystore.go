// Package draftstore holds in-flight checkout sessions. Drafts are
// deliberately kept out of the database: they are scratch state that dies
// with abandonment, expiry or success.
package draftstore

import (
	"context"
	"sync"
	"time"

	"github.com/kazihub-inc/kazihub/internal/domain/checkout"
	"github.com/kazihub-inc/kazihub/internal/shared/logger"
)

const janitorInterval = time.Minute

// MemoryStore is an in-memory draft store with background expiry.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[string]*checkout.Draft

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  bool
	logger   logger.Interface
}

func NewMemoryStore(logger logger.Interface) *MemoryStore {
	return &MemoryStore{
		drafts:   make(map[string]*checkout.Draft),
		stopChan: make(chan struct{}),
		logger:   logger,
	}
}

// Start launches the expiry janitor.
func (s *MemoryStore) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.janitorLoop()
}

// Stop stops the janitor and waits for it to exit.
func (s *MemoryStore) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
}

func (s *MemoryStore) Get(_ context.Context, sid string) (*checkout.Draft, error) {
	s.mu.RLock()
	draft, ok := s.drafts[sid]
	s.mu.RUnlock()

	if !ok {
		return nil, checkout.ErrDraftNotFound
	}
	if draft.IsExpired(time.Now()) {
		s.mu.Lock()
		delete(s.drafts, sid)
		s.mu.Unlock()
		return nil, checkout.ErrDraftExpired
	}
	// Callers get a clone; their mutations reach the store only via Save.
	return draft.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, draft *checkout.Draft) error {
	s.mu.Lock()
	s.drafts[draft.SID()] = draft.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.drafts, sid)
	s.mu.Unlock()
	return nil
}

// Len returns the number of live drafts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

func (s *MemoryStore) janitorLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *MemoryStore) evictExpired() {
	now := time.Now()

	s.mu.Lock()
	var evicted int
	for sid, draft := range s.drafts {
		if draft.IsExpired(now) {
			delete(s.drafts, sid)
			evicted++
		}
	}
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.Debugw("expired checkout drafts evicted", "count", evicted)
	}
}
