package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archatara/internal/domain/reservation"
	"archatara/internal/domain/settings"
	"archatara/internal/infra/storage/memory"
)

type sentMail struct {
	To      string
	Subject string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (n *recordingNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{To: to, Subject: subject})
	return nil
}

func (n *recordingNotifier) all() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMail, len(n.sent))
	copy(out, n.sent)
	return out
}

type failingSubscriber struct {
	err error
}

func (s failingSubscriber) Run(ctx context.Context, onSnapshot func([]reservation.Reservation), onFailure func(error)) {
	onFailure(s.err)
}

func fallbackAdapter(t *testing.T) (*Adapter, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	adapter := New(Config{
		Fallback:         memory.NewReservationStore(),
		FallbackSettings: memory.NewSettingsStore(),
		Notifier:         notifier,
	})
	adapter.Start(context.Background())
	require.Equal(t, ModeFallback, adapter.Mode())
	return adapter, notifier
}

func createParams(unitID string) reservation.CreateParams {
	return reservation.CreateParams{
		Date:          "2026-09-04",
		TypeID:        "glamping",
		UnitID:        unitID,
		CustomerName:  "Somchai P.",
		CustomerPhone: "081-234-5678",
		CustomerEmail: "somchai@example.com",
		SlipImage:     "slip",
	}
}

func TestStartWithoutBackendEntersFallback(t *testing.T) {
	store := memory.NewReservationStore()
	store.Seed(reservation.Reservation{ID: "seed", Date: "2026-09-04", UnitID: "G1", Status: reservation.StatusConfirmed})
	adapter := New(Config{Fallback: store, FallbackSettings: memory.NewSettingsStore()})

	adapter.Start(context.Background())

	assert.Equal(t, ModeFallback, adapter.Mode())
	require.Len(t, adapter.Snapshot(), 1)
	assert.Equal(t, "seed", adapter.Snapshot()[0].ID)
}

func TestCreateMakesUnitImmediatelyUnavailable(t *testing.T) {
	adapter, notifier := fallbackAdapter(t)

	created, err := adapter.Create(context.Background(), createParams("G1"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, reservation.StatusPending, created.Status)

	assert.True(t, adapter.UnavailableUnits("2026-09-04").Has("G1"))
	assert.False(t, adapter.UnavailableUnits("2026-09-05").Has("G1"))

	_, err = adapter.Create(context.Background(), createParams("G1"))
	assert.ErrorIs(t, err, ErrUnitUnavailable)

	mails := notifier.all()
	require.Len(t, mails, 1)
	assert.Equal(t, settings.Defaults().AdminNotificationEmail, mails[0].To)
	assert.Equal(t, "New Booking Received", mails[0].Subject)
}

func TestCreateRejectsInvalidParams(t *testing.T) {
	adapter, notifier := fallbackAdapter(t)

	params := createParams("G1")
	params.SlipImage = ""
	_, err := adapter.Create(context.Background(), params)
	assert.ErrorIs(t, err, reservation.ErrSlipRequired)
	assert.Empty(t, adapter.Snapshot())
	assert.Empty(t, notifier.all())
}

func TestConfirmNotifiesCustomerOnce(t *testing.T) {
	adapter, notifier := fallbackAdapter(t)
	created, err := adapter.Create(context.Background(), createParams("G1"))
	require.NoError(t, err)

	require.NoError(t, adapter.SetStatus(context.Background(), created.ID, reservation.StatusConfirmed))
	rec, err := adapter.Reservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, rec.Status)

	err = adapter.SetStatus(context.Background(), created.ID, reservation.StatusRejected)
	assert.ErrorIs(t, err, reservation.ErrStatusFinal)

	mails := notifier.all()
	require.Len(t, mails, 2)
	assert.Equal(t, "somchai@example.com", mails[1].To)
	assert.Equal(t, "Booking Confirmed", mails[1].Subject)
}

func TestRejectFreesTheUnit(t *testing.T) {
	adapter, _ := fallbackAdapter(t)
	created, err := adapter.Create(context.Background(), createParams("G2"))
	require.NoError(t, err)

	require.NoError(t, adapter.SetStatus(context.Background(), created.ID, reservation.StatusRejected))
	assert.False(t, adapter.UnavailableUnits("2026-09-04").Has("G2"))

	_, err = adapter.Create(context.Background(), createParams("G2"))
	assert.NoError(t, err)
}

func TestUpdateFieldsAndDelete(t *testing.T) {
	adapter, _ := fallbackAdapter(t)
	created, err := adapter.Create(context.Background(), createParams("B1"))
	require.NoError(t, err)

	name := "Anong K."
	require.NoError(t, adapter.UpdateFields(context.Background(), created.ID, reservation.FieldUpdate{CustomerName: &name}))
	rec, err := adapter.Reservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, name, rec.CustomerName)

	assert.ErrorIs(t, adapter.UpdateFields(context.Background(), created.ID, reservation.FieldUpdate{}), reservation.ErrNothingToUpdate)

	require.NoError(t, adapter.Delete(context.Background(), created.ID))
	_, err = adapter.Reservation(created.ID)
	assert.ErrorIs(t, err, reservation.ErrNotFound)
	assert.ErrorIs(t, adapter.Delete(context.Background(), created.ID), reservation.ErrNotFound)
}

func TestDeleteAllClearsSnapshot(t *testing.T) {
	adapter, _ := fallbackAdapter(t)
	_, err := adapter.Create(context.Background(), createParams("C1"))
	require.NoError(t, err)

	require.NoError(t, adapter.DeleteAll(context.Background()))
	assert.Empty(t, adapter.Snapshot())
}

func TestSaveSettingsUpdatesCache(t *testing.T) {
	adapter, _ := fallbackAdapter(t)
	assert.Equal(t, settings.Defaults(), adapter.Settings())

	next := settings.Settings{WeekendOnlyMode: true, AdminNotificationEmail: "owner@archatara.com"}
	require.NoError(t, adapter.SaveSettings(context.Background(), next))
	assert.Equal(t, next, adapter.Settings())
}

func TestSubscriptionFailureDegradesPermanently(t *testing.T) {
	fallback := memory.NewReservationStore()
	fallback.Seed(reservation.Reservation{ID: "seed", Date: "2026-09-04", UnitID: "G1", Status: reservation.StatusPending})
	adapter := New(Config{
		Live:             memory.NewReservationStore(),
		LiveSettings:     memory.NewSettingsStore(),
		Subscriber:       failingSubscriber{err: errors.New("stream closed")},
		Fallback:         fallback,
		FallbackSettings: memory.NewSettingsStore(),
	})

	adapter.Start(context.Background())
	require.Eventually(t, func() bool {
		return adapter.Mode() == ModeFallback
	}, time.Second, 10*time.Millisecond)

	// The fallback list replaces the snapshot and later live pushes
	// are ignored.
	require.Eventually(t, func() bool {
		return len(adapter.Snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "seed", adapter.Snapshot()[0].ID)

	_, err := adapter.Create(context.Background(), createParams("G2"))
	require.NoError(t, err)
	assert.Equal(t, ModeFallback, adapter.Mode())
}
