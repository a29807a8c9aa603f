package mongo

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"archatara/internal/domain/reservation"
)

// Watcher subscribes to the bookings collection and pushes full list
// snapshots whenever the backend reports a change. It is the live-mode
// counterpart of the document store's push feed: inserts, updates and
// deletes are all observed, never polled.
type Watcher struct {
	Repo   *ReservationRepository
	Logger *slog.Logger
}

// Run blocks until ctx is done or the subscription fails. Each
// delivered batch is a complete, consistently ordered snapshot; the
// consumer replaces its local list wholesale, so readers never see a
// torn intermediate state. A failure is reported through onFailure
// exactly once and Run returns; the session then stays in fallback mode.
func (w *Watcher) Run(ctx context.Context, onSnapshot func([]reservation.Reservation), onFailure func(error)) {
	initial, err := w.Repo.List(ctx)
	if err != nil {
		onFailure(err)
		return
	}
	onSnapshot(initial)

	stream, err := w.Repo.col.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		onFailure(err)
		return
	}
	defer stream.Close(context.Background())

	if w.Logger != nil {
		w.Logger.Info("live subscription established", "collection", w.Repo.col.Name())
	}

	for stream.Next(ctx) {
		snapshot, err := w.Repo.List(ctx)
		if err != nil {
			onFailure(err)
			return
		}
		onSnapshot(snapshot)
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		onFailure(err)
	}
}
