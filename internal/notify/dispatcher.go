// Package notify delivers reminder messages and runs the periodic reminder pass.
package notify

import (
	"context"
	"log/slog"
)

// Dispatcher delivers the reminder messages of one account.
type Dispatcher interface {
	Dispatch(ctx context.Context, accountID string, messages []string) error
}

// LogDispatcher writes each message to a structured logger.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a LogDispatcher. A nil logger means slog.Default().
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, accountID string, messages []string) error {
	for _, msg := range messages {
		d.logger.InfoContext(ctx, "Reminder", "account_id", accountID, "message", msg)
	}
	return nil
}
