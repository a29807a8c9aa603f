package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"archatara/internal/domain/reservation"
	"archatara/internal/domain/settings"
	"archatara/internal/infra/notify"
	"archatara/internal/infra/store"
)

// Store is the slice of the reservation store adapter the admin panels
// operate on. All three panels read the same snapshot.
type Store interface {
	Snapshot() []reservation.Reservation
	Reservation(id string) (reservation.Reservation, error)
	SetStatus(ctx context.Context, id string, status reservation.Status) error
	UpdateFields(ctx context.Context, id string, update reservation.FieldUpdate) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Settings() settings.Settings
	SaveSettings(ctx context.Context, value settings.Settings) error
	Mode() store.Mode
}

// Service implements the authenticated admin workflow: reservation
// review, calendar, settings and bulk data operations.
type Service struct {
	Store    Store
	Notifier notify.Notifier
	Logger   *slog.Logger
	Clock    func() time.Time
}

// Reservations lists every reservation, newest first.
func (s *Service) Reservations() []reservation.Reservation {
	return s.Store.Snapshot()
}

// Reservation fetches one record, including the slip payload.
func (s *Service) Reservation(id string) (reservation.Reservation, error) {
	return s.Store.Reservation(id)
}

// Confirm approves a pending reservation.
func (s *Service) Confirm(ctx context.Context, id string) error {
	return s.Store.SetStatus(ctx, id, reservation.StatusConfirmed)
}

// Reject declines a pending reservation, freeing its unit for the date.
func (s *Service) Reject(ctx context.Context, id string) error {
	return s.Store.SetStatus(ctx, id, reservation.StatusRejected)
}

// UpdateCustomer commits an edit of the customer contact fields.
func (s *Service) UpdateCustomer(ctx context.Context, id string, update reservation.FieldUpdate) error {
	return s.Store.UpdateFields(ctx, id, update)
}

// Delete destroys one reservation record.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}

// DeleteAll irreversibly removes every reservation record.
func (s *Service) DeleteAll(ctx context.Context) error {
	if err := s.Store.DeleteAll(ctx); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Warn("all reservation records deleted")
	}
	return nil
}

// Settings returns the cached venue settings.
func (s *Service) Settings() settings.Settings {
	return s.Store.Settings()
}

// SaveSettings persists the full settings object.
func (s *Service) SaveSettings(ctx context.Context, value settings.Settings) error {
	return s.Store.SaveSettings(ctx, value)
}

// Mode reports the active backend for the degraded-mode banner.
func (s *Service) Mode() store.Mode {
	return s.Store.Mode()
}

// SendSummary mails a booking summary to the admin notification
// address. Runs weekly on a schedule and on demand from the settings
// panel.
func (s *Service) SendSummary(ctx context.Context) error {
	cfg := s.Store.Settings()
	if cfg.AdminNotificationEmail == "" {
		return fmt.Errorf("admin: no notification address configured")
	}
	items := s.Store.Snapshot()
	var pending, confirmed, rejected int
	for _, r := range items {
		switch r.Status {
		case reservation.StatusPending:
			pending++
		case reservation.StatusConfirmed:
			confirmed++
		case reservation.StatusRejected:
			rejected++
		}
	}
	body := fmt.Sprintf(
		"Booking summary as of %s\n\nTotal: %d\nPending: %d\nConfirmed: %d\nRejected: %d\n",
		s.now().Format(reservation.DateLayout), len(items), pending, confirmed, rejected)
	return s.Notifier.Send(ctx, cfg.AdminNotificationEmail, "Weekly Booking Summary", body)
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
