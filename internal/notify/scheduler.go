package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/lendbook/internal/metrics"
)

// DefaultInterval is the time between two reminder passes.
const DefaultInterval = 12 * time.Hour

// AccountLister lists the accounts to evaluate on each pass.
type AccountLister interface {
	ListAccountIDs(ctx context.Context) ([]string, error)
}

// ReminderSource computes the reminder messages of one account. It never fails.
type ReminderSource interface {
	ComputeReminders(ctx context.Context, accountID string) []string
}

// Scheduler evaluates reminders for every account once at start and then on
// every tick, handing the messages to a Dispatcher. Failures are logged and
// counted; nothing is retried and repeated messages are not suppressed.
type Scheduler struct {
	accounts   AccountLister
	reminders  ReminderSource
	dispatcher Dispatcher
	interval   time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewScheduler creates a Scheduler. A non-positive interval means DefaultInterval.
func NewScheduler(accounts AccountLister, reminders ReminderSource, dispatcher Dispatcher, interval time.Duration, logger *slog.Logger, m *metrics.Metrics) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		accounts:   accounts,
		reminders:  reminders,
		dispatcher: dispatcher,
		interval:   interval,
		logger:     logger,
		metrics:    m,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Reminder scheduler started", "interval", s.interval)
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single pass over all accounts and returns the number of
// messages dispatched.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	ids, err := s.accounts.ListAccountIDs(ctx)
	if err != nil {
		s.logger.Error("Reminder pass failed to list accounts", "error", err)
		s.metrics.ReminderFailure("accounts")
		return 0
	}

	sent := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return sent
		}

		messages := s.reminders.ComputeReminders(ctx, id)
		if len(messages) == 0 {
			continue
		}

		if err := s.dispatcher.Dispatch(ctx, id, messages); err != nil {
			s.logger.Error("Reminder dispatch failed", "account_id", id, "messages", len(messages), "error", err)
			s.metrics.Dispatch(false)
			continue
		}
		s.metrics.Dispatch(true)
		sent += len(messages)
	}

	s.logger.Debug("Reminder pass finished", "accounts", len(ids), "messages", sent)
	return sent
}
