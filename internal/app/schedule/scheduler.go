package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SummarySender is the admin service operation the weekly job invokes.
type SummarySender interface {
	SendSummary(ctx context.Context) error
}

// Scheduler runs the recurring booking-summary email on a cron
// schedule.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New wires the summary job onto spec (standard five-field cron
// expression, e.g. "0 9 * * 1" for Mondays at nine).
func New(spec string, sender SummarySender, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := sender.SendSummary(ctx); err != nil {
			logger.Warn("summary dispatch failed", "error", err)
			return
		}
		logger.Info("summary dispatched")
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
