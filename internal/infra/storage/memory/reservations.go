package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"archatara/internal/domain/reservation"
)

// ReservationStore is the in-process reservation list backing fallback
// (offline/demo) mode. Every operation mutates the list synchronously;
// an optional delay imitates the round-trip the live backend would take.
type ReservationStore struct {
	mu    sync.RWMutex
	items []reservation.Reservation
	delay time.Duration
	now   func() time.Time
	newID func() string
}

// Option tweaks store construction.
type Option func(*ReservationStore)

// WithDelay makes mutations sleep for d before returning.
func WithDelay(d time.Duration) Option {
	return func(s *ReservationStore) { s.delay = d }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *ReservationStore) { s.now = now }
}

// NewReservationStore builds an empty fallback store.
func NewReservationStore(opts ...Option) *ReservationStore {
	s := &ReservationStore{
		now:   time.Now,
		newID: func() string { return "local_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed inserts records directly, bypassing validation. Used for the
// demo booking shown when the backend is unreachable.
func (s *ReservationStore) Seed(items ...reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// Create stamps a locally generated identifier and local wall-clock
// timestamp onto rec and stores it.
func (s *ReservationStore) Create(ctx context.Context, rec reservation.Reservation) (reservation.Reservation, error) {
	if err := s.sleep(ctx); err != nil {
		return reservation.Reservation{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.newID()
	rec.CreatedAt = s.now().UTC()
	s.items = append(s.items, rec)
	return rec, nil
}

// SetStatus overwrites the status of the identified record.
func (s *ReservationStore) SetStatus(ctx context.Context, id string, status reservation.Status) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return nil
		}
	}
	return reservation.ErrNotFound
}

// UpdateFields applies an admin edit to the identified record.
func (s *ReservationStore) UpdateFields(ctx context.Context, id string, update reservation.FieldUpdate) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i].Apply(update)
		}
	}
	return reservation.ErrNotFound
}

// Delete removes the identified record.
func (s *ReservationStore) Delete(ctx context.Context, id string) error {
	if err := s.sleep(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return reservation.ErrNotFound
}

// DeleteAll irreversibly clears the list.
func (s *ReservationStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

// List returns a copy of all records ordered by CreatedAt descending,
// matching the live query's default ordering.
func (s *ReservationStore) List(ctx context.Context) ([]reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]reservation.Reservation, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *ReservationStore) sleep(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}
