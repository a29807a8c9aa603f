package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"archatara/internal/domain/reservation"
	"archatara/internal/domain/settings"
	"archatara/internal/infra/notify"
)

var (
	// ErrUnitUnavailable is the advisory double-booking guard: the unit
	// is already held by a non-rejected reservation for that date in the
	// current snapshot. Concurrent submissions are not serialized beyond
	// this check.
	ErrUnitUnavailable = errors.New("store: unit already booked for that date")
)

// Mode names the active backend.
type Mode string

const (
	ModeLive     Mode = "live"
	ModeFallback Mode = "fallback"
)

// Backend is the storage contract shared by the live document store and
// the in-memory fallback list. Create stamps ID and CreatedAt.
type Backend interface {
	Create(ctx context.Context, rec reservation.Reservation) (reservation.Reservation, error)
	SetStatus(ctx context.Context, id string, status reservation.Status) error
	UpdateFields(ctx context.Context, id string, update reservation.FieldUpdate) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	List(ctx context.Context) ([]reservation.Reservation, error)
}

// SettingsBackend persists the singleton settings document.
type SettingsBackend interface {
	Load(ctx context.Context) (settings.Settings, error)
	Save(ctx context.Context, value settings.Settings) error
}

// Subscriber is the live push feed: it delivers full-list snapshots
// until it fails or ctx is done.
type Subscriber interface {
	Run(ctx context.Context, onSnapshot func([]reservation.Reservation), onFailure func(error))
}

// EventPublisher emits reservation lifecycle events. Best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event reservation.Event) error
}

// Config wires an Adapter. Live, LiveSettings and Subscriber are nil
// when the backend is structurally unavailable (missing or malformed
// store configuration), in which case the session starts in fallback
// mode immediately.
type Config struct {
	Live             Backend
	LiveSettings     SettingsBackend
	Subscriber       Subscriber
	Fallback         Backend
	FallbackSettings SettingsBackend
	Notifier         notify.Notifier
	Events           EventPublisher
	Logger           *slog.Logger
	Clock            func() time.Time
}

// Adapter is the single writer for reservation records. Views never
// pick a backend themselves: every operation goes through here, and the
// live-versus-fallback decision is one conditional inside the adapter.
//
// Mode selection is sticky for the session: a fresh subscription is
// attempted on each start, and any structural or subscription failure
// moves live -> fallback, never the reverse.
type Adapter struct {
	mu       sync.RWMutex
	mode     Mode
	snapshot []reservation.Reservation
	settings settings.Settings

	live             Backend
	liveSettings     SettingsBackend
	subscriber       Subscriber
	fallback         Backend
	fallbackSettings SettingsBackend

	notifier notify.Notifier
	events   EventPublisher
	log      *slog.Logger
	now      func() time.Time
}

// New builds an adapter; call Start to select the mode and begin the
// live subscription.
func New(cfg Config) *Adapter {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		mode:             ModeLive,
		settings:         settings.Defaults(),
		live:             cfg.Live,
		liveSettings:     cfg.LiveSettings,
		subscriber:       cfg.Subscriber,
		fallback:         cfg.Fallback,
		fallbackSettings: cfg.FallbackSettings,
		notifier:         cfg.Notifier,
		events:           cfg.Events,
		log:              log,
		now:              now,
	}
}

// Start selects the operating mode. With a structurally unavailable
// backend it degrades immediately; otherwise it loads settings once and
// launches the subscription, degrading if the feed ever fails.
func (a *Adapter) Start(ctx context.Context) {
	if a.live == nil || a.subscriber == nil {
		a.degrade(ctx, "backend not configured", nil)
		return
	}

	if a.liveSettings != nil {
		loaded, err := a.liveSettings.Load(ctx)
		if err != nil {
			// Defaults are safe; a missing settings document is not an
			// error worth surfacing to anyone.
			a.log.Debug("settings load failed, using defaults", "error", err)
		} else {
			a.mu.Lock()
			a.settings = loaded
			a.mu.Unlock()
		}
	}

	go a.subscriber.Run(ctx, a.replaceSnapshot, func(err error) {
		a.degrade(ctx, "live subscription failed", err)
	})
}

// Mode reports the active backend; the HTTP surface exposes it so the
// UI can render the degraded-durability banner.
func (a *Adapter) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// Snapshot returns a copy of the current reservation list, newest
// first.
func (a *Adapter) Snapshot() []reservation.Reservation {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]reservation.Reservation, len(a.snapshot))
	copy(out, a.snapshot)
	return out
}

// Reservation finds one record in the current snapshot.
func (a *Adapter) Reservation(id string) (reservation.Reservation, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, r := range a.snapshot {
		if r.ID == id {
			return r, nil
		}
	}
	return reservation.Reservation{}, reservation.ErrNotFound
}

// UnavailableUnits computes the taken units for date from the latest
// snapshot.
func (a *Adapter) UnavailableUnits(date string) reservation.UnitSet {
	return reservation.UnavailableUnits(date, a.Snapshot())
}

// Settings returns the cached settings; defaults until a load succeeds.
func (a *Adapter) Settings() settings.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// SaveSettings persists the full settings object on the active backend
// and updates the cached copy used by the booking workflow.
func (a *Adapter) SaveSettings(ctx context.Context, value settings.Settings) error {
	backend := a.settingsBackend()
	if backend != nil {
		if err := backend.Save(ctx, value); err != nil {
			return fmt.Errorf("store: settings save failed: %w", err)
		}
	}
	a.mu.Lock()
	a.settings = value
	a.mu.Unlock()
	return nil
}

// Create validates, applies the advisory availability check against the
// current snapshot, stores the reservation as pending, notifies the
// admin address and publishes a lifecycle event. The whole submission
// is atomic from the caller's perspective: on error nothing advanced.
func (a *Adapter) Create(ctx context.Context, params reservation.CreateParams) (reservation.Reservation, error) {
	rec, err := reservation.New(params)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if a.UnavailableUnits(rec.Date).Has(rec.UnitID) {
		return reservation.Reservation{}, ErrUnitUnavailable
	}

	created, err := a.backend().Create(ctx, *rec)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("store: create failed: %w", err)
	}

	a.mu.Lock()
	a.snapshot = append([]reservation.Reservation{created}, a.snapshot...)
	a.mu.Unlock()

	a.notifyAdmin(ctx, created)
	a.publish(ctx, reservation.CreatedEvent(created, a.now().UTC()))
	return created, nil
}

// SetStatus performs an administrator status transition. Only
// pending -> confirmed and pending -> rejected are legal; terminal
// states are final. A transition to confirmed triggers a best-effort
// customer notification that never rolls back the status change.
func (a *Adapter) SetStatus(ctx context.Context, id string, status reservation.Status) error {
	rec, err := a.Reservation(id)
	if err != nil {
		return err
	}
	switch status {
	case reservation.StatusConfirmed:
		err = rec.Confirm()
	case reservation.StatusRejected:
		err = rec.Reject()
	default:
		err = reservation.ErrInvalidStatus
	}
	if err != nil {
		return err
	}

	if err := a.backend().SetStatus(ctx, id, status); err != nil {
		return fmt.Errorf("store: status update failed: %w", err)
	}
	a.replaceRecord(rec)

	if status == reservation.StatusConfirmed && rec.CustomerEmail != "" {
		a.send(ctx, rec.CustomerEmail, "Booking Confirmed",
			fmt.Sprintf("Your booking of unit %s on %s has been confirmed.", rec.UnitID, rec.Date))
	}
	a.publish(ctx, reservation.StatusEvent(rec, a.now().UTC()))
	return nil
}

// UpdateFields applies an admin edit of the customer contact fields.
func (a *Adapter) UpdateFields(ctx context.Context, id string, update reservation.FieldUpdate) error {
	rec, err := a.Reservation(id)
	if err != nil {
		return err
	}
	if err := rec.Apply(update); err != nil {
		return err
	}

	if err := a.backend().UpdateFields(ctx, id, update); err != nil {
		return fmt.Errorf("store: field update failed: %w", err)
	}
	a.replaceRecord(rec)
	a.publish(ctx, reservation.UpdatedEvent(rec, a.now().UTC()))
	return nil
}

// Delete destroys one reservation record.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	if _, err := a.Reservation(id); err != nil {
		return err
	}
	if err := a.backend().Delete(ctx, id); err != nil {
		return fmt.Errorf("store: delete failed: %w", err)
	}

	a.mu.Lock()
	for i := range a.snapshot {
		if a.snapshot[i].ID == id {
			a.snapshot = append(a.snapshot[:i], a.snapshot[i+1:]...)
			break
		}
	}
	a.mu.Unlock()

	a.publish(ctx, reservation.DeletedEvent(id, a.now().UTC()))
	return nil
}

// DeleteAll irreversibly removes every reservation record.
func (a *Adapter) DeleteAll(ctx context.Context) error {
	if err := a.backend().DeleteAll(ctx); err != nil {
		return fmt.Errorf("store: delete all failed: %w", err)
	}
	a.mu.Lock()
	a.snapshot = nil
	a.mu.Unlock()
	return nil
}

func (a *Adapter) backend() Backend {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.mode == ModeLive {
		return a.live
	}
	return a.fallback
}

func (a *Adapter) settingsBackend() SettingsBackend {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.mode == ModeLive {
		return a.liveSettings
	}
	return a.fallbackSettings
}

// replaceSnapshot installs a full snapshot delivered by the live feed.
// Wholesale replacement means readers never observe a torn list.
func (a *Adapter) replaceSnapshot(items []reservation.Reservation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != ModeLive {
		return
	}
	a.snapshot = items
}

// degrade enters fallback mode. One-way: nothing switches back within
// the session.
func (a *Adapter) degrade(ctx context.Context, reason string, cause error) {
	a.mu.Lock()
	if a.mode == ModeFallback {
		a.mu.Unlock()
		return
	}
	a.mode = ModeFallback
	a.mu.Unlock()

	a.log.Warn("entering fallback mode", "reason", reason, "error", cause)

	items, err := a.fallback.List(ctx)
	if err != nil {
		a.log.Error("fallback list load failed", "error", err)
		return
	}
	a.mu.Lock()
	a.snapshot = items
	a.mu.Unlock()
}

func (a *Adapter) notifyAdmin(ctx context.Context, rec reservation.Reservation) {
	to := a.Settings().AdminNotificationEmail
	if to == "" {
		return
	}
	a.send(ctx, to, "New Booking Received",
		fmt.Sprintf("Customer: %s, Date: %s, Unit: %s", rec.CustomerName, rec.Date, rec.UnitID))
}

func (a *Adapter) send(ctx context.Context, to, subject, body string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Send(ctx, to, subject, body); err != nil {
		a.log.Warn("notification dispatch failed", "to", to, "subject", subject, "error", err)
	}
}

func (a *Adapter) publish(ctx context.Context, event reservation.Event) {
	if a.events == nil {
		return
	}
	if err := a.events.Publish(ctx, event); err != nil {
		a.log.Warn("event publish failed", "event", event.Name, "reservation_id", event.ReservationID, "error", err)
	}
}

func (a *Adapter) replaceRecord(rec reservation.Reservation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.snapshot {
		if a.snapshot[i].ID == rec.ID {
			a.snapshot[i] = rec
			return
		}
	}
}
