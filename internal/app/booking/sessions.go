package booking

import (
	"errors"
	"sync"
	"time"

	"archatara/internal/domain/catalog"
)

var ErrSessionNotFound = errors.New("booking: session not found")

// DefaultSessionTTL is how long an untouched workflow survives before
// the registry evicts it.
const DefaultSessionTTL = 2 * time.Hour

type sessionEntry struct {
	flow     *Workflow
	lastSeen time.Time
}

// Sessions holds the in-flight customer workflows, keyed by workflow
// id. Workflows are transient view state; they are never persisted, and
// entries idle past the TTL are swept out on the next registry access
// so abandoned flows cannot accumulate.
type Sessions struct {
	mu      sync.RWMutex
	items   map[string]*sessionEntry
	catalog *catalog.Catalog
	store   Store
	opts    []Option
	ttl     time.Duration
	now     func() time.Time
}

// SessionsOption tweaks registry construction.
type SessionsOption func(*Sessions)

// WithWorkflowOptions forwards options to every workflow the registry
// starts.
func WithWorkflowOptions(opts ...Option) SessionsOption {
	return func(s *Sessions) { s.opts = opts }
}

// WithSessionTTL overrides the idle eviction window.
func WithSessionTTL(d time.Duration) SessionsOption {
	return func(s *Sessions) { s.ttl = d }
}

// WithSessionClock overrides the registry's time source.
func WithSessionClock(now func() time.Time) SessionsOption {
	return func(s *Sessions) { s.now = now }
}

// NewSessions builds an empty session registry.
func NewSessions(cat *catalog.Catalog, store Store, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		items:   make(map[string]*sessionEntry),
		catalog: cat,
		store:   store,
		ttl:     DefaultSessionTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates and registers a fresh workflow.
func (s *Sessions) Start() *Workflow {
	w := New(s.catalog, s.store, s.opts...)
	s.mu.Lock()
	s.evictExpired()
	s.items[w.ID()] = &sessionEntry{flow: w, lastSeen: s.now()}
	s.mu.Unlock()
	return w
}

// Get resolves a workflow by id, refreshing its idle timer.
func (s *Sessions) Get(id string) (*Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	entry, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = s.now()
	return entry.flow, nil
}

// Remove discards a workflow.
func (s *Sessions) Remove(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// evictExpired drops entries idle past the TTL. Caller holds the lock.
func (s *Sessions) evictExpired() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, entry := range s.items {
		if entry.lastSeen.Before(cutoff) {
			delete(s.items, id)
		}
	}
}
