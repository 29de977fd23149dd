package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/lendbook/internal/middleware"
	"github.com/mmynk/lendbook/internal/reminder"
	"github.com/mmynk/lendbook/pkg/api"
)

// ReminderService implements the ReminderService RPC interface.
type ReminderService struct {
	engine *reminder.Engine
}

// NewReminderService creates a ReminderService backed by engine.
func NewReminderService(engine *reminder.Engine) *ReminderService {
	return &ReminderService{engine: engine}
}

// ComputeReminders evaluates the signed-in account's records as of now.
// Evaluation failures degrade to an empty list, never to an error.
func (s *ReminderService) ComputeReminders(ctx context.Context, req *connect.Request[api.ComputeRemindersRequest]) (*connect.Response[api.ComputeRemindersResponse], error) {
	notices := s.engine.Notices(ctx, middleware.GetAccountID(ctx))

	out := make([]api.ReminderNotice, len(notices))
	for i, n := range notices {
		out[i] = toAPINotice(n)
	}
	return connect.NewResponse(&api.ComputeRemindersResponse{
		Messages: reminder.Messages(notices),
		Notices:  out,
	}), nil
}
