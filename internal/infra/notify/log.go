package notify

import (
	"context"
	"log/slog"
)

// LogNotifier simulates dispatch by logging the message. It is the
// active notifier whenever no mail provider is configured, so local and
// demo runs behave identically to production minus the actual delivery.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.Logger.Info("email simulation", "to", to, "subject", subject, "body", body)
	return nil
}
