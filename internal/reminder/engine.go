package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/lendbook/internal/metrics"
	"github.com/mmynk/lendbook/internal/models"
)

// RecordLister is the store read the engine depends on.
type RecordLister interface {
	ListLoanRecords(ctx context.Context, accountID string) ([]models.LoanRecord, error)
}

// Engine computes reminders for an account from the store.
type Engine struct {
	loans   RecordLister
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger replaces slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics records notices and failures on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an Engine reading records from loans.
func NewEngine(loans RecordLister, opts ...Option) *Engine {
	e := &Engine{
		loans:  loans,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Notices evaluates every record of the account against the engine clock.
// It never fails: a missing account ID, a store error or a panic while
// evaluating yields an empty result.
func (e *Engine) Notices(ctx context.Context, accountID string) (notices []Notice) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Reminder evaluation panicked", "account_id", accountID, "panic", r)
			e.metrics.ReminderFailure("panic")
			notices = nil
		}
	}()

	if accountID == "" {
		e.logger.Warn("Reminder evaluation skipped: no account id")
		e.metrics.ReminderFailure("account")
		return nil
	}

	loans, err := e.loans.ListLoanRecords(ctx, accountID)
	if err != nil {
		e.logger.Error("Reminder evaluation failed to list records", "account_id", accountID, "error", err)
		e.metrics.ReminderFailure("list")
		return nil
	}

	notices = Compute(e.now(), loans)
	for _, n := range notices {
		e.metrics.ReminderNotice(n.Kind.String())
	}

	e.logger.Debug("Reminders computed", "account_id", accountID, "records", len(loans), "notices", len(notices))
	return notices
}

// ComputeReminders returns the reminder messages for the account.
func (e *Engine) ComputeReminders(ctx context.Context, accountID string) []string {
	return Messages(e.Notices(ctx, accountID))
}
