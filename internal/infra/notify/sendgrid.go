package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridNotifier sends transactional email through SendGrid.
type SendGridNotifier struct {
	APIKey    string
	FromEmail string
	FromName  string
	Logger    *slog.Logger
}

func (n *SendGridNotifier) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("notify: recipient address is empty")
	}
	from := mail.NewEmail(n.FromName, n.FromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, "")

	client := sendgrid.NewSendClient(n.APIKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("notify: sendgrid dispatch failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	if n.Logger != nil {
		n.Logger.Info("email dispatched", "to", to, "subject", subject, "status", resp.StatusCode)
	}
	return nil
}
