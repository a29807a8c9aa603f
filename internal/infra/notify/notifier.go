package notify

import "context"

// Notifier dispatches a message to a recipient. Dispatch is
// fire-and-forget from the caller's point of view: failures are logged,
// never propagated into the triggering state change.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
