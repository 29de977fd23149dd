package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AccountServiceHandler is implemented by the account service.
type AccountServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetProfile(context.Context, *connect.Request[GetProfileRequest]) (*connect.Response[GetProfileResponse], error)
	UpdateProfile(context.Context, *connect.Request[UpdateProfileRequest]) (*connect.Response[UpdateProfileResponse], error)
}

// LoanServiceHandler is implemented by the loan service.
type LoanServiceHandler interface {
	ListStatuses(context.Context, *connect.Request[ListStatusesRequest]) (*connect.Response[ListStatusesResponse], error)
	CreateLoan(context.Context, *connect.Request[CreateLoanRequest]) (*connect.Response[CreateLoanResponse], error)
	ListLoans(context.Context, *connect.Request[ListLoansRequest]) (*connect.Response[ListLoansResponse], error)
	GetLoan(context.Context, *connect.Request[GetLoanRequest]) (*connect.Response[GetLoanResponse], error)
	UpdateLoan(context.Context, *connect.Request[UpdateLoanRequest]) (*connect.Response[UpdateLoanResponse], error)
	RecordPayment(context.Context, *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error)
	MarkPaid(context.Context, *connect.Request[MarkPaidRequest]) (*connect.Response[MarkPaidResponse], error)
	Summary(context.Context, *connect.Request[SummaryRequest]) (*connect.Response[SummaryResponse], error)
}

// ReminderServiceHandler is implemented by the reminder service.
type ReminderServiceHandler interface {
	ComputeReminders(context.Context, *connect.Request[ComputeRemindersRequest]) (*connect.Response[ComputeRemindersResponse], error)
}

// routes dispatches on the full procedure path, the way generated Connect
// handlers do.
type routes map[string]http.Handler

func (r routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h, ok := r[req.URL.Path]
	if !ok {
		http.NotFound(w, req)
		return
	}
	h.ServeHTTP(w, req)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

// NewAccountServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AccountServiceName + "/", routes{
		AccountServiceRegisterProcedure:      connect.NewUnaryHandler(AccountServiceRegisterProcedure, svc.Register, opts...),
		AccountServiceLoginProcedure:         connect.NewUnaryHandler(AccountServiceLoginProcedure, svc.Login, opts...),
		AccountServiceGetProfileProcedure:    connect.NewUnaryHandler(AccountServiceGetProfileProcedure, svc.GetProfile, opts...),
		AccountServiceUpdateProfileProcedure: connect.NewUnaryHandler(AccountServiceUpdateProfileProcedure, svc.UpdateProfile, opts...),
	}
}

// NewLoanServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewLoanServiceHandler(svc LoanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LoanServiceName + "/", routes{
		LoanServiceListStatusesProcedure:  connect.NewUnaryHandler(LoanServiceListStatusesProcedure, svc.ListStatuses, opts...),
		LoanServiceCreateLoanProcedure:    connect.NewUnaryHandler(LoanServiceCreateLoanProcedure, svc.CreateLoan, opts...),
		LoanServiceListLoansProcedure:     connect.NewUnaryHandler(LoanServiceListLoansProcedure, svc.ListLoans, opts...),
		LoanServiceGetLoanProcedure:       connect.NewUnaryHandler(LoanServiceGetLoanProcedure, svc.GetLoan, opts...),
		LoanServiceUpdateLoanProcedure:    connect.NewUnaryHandler(LoanServiceUpdateLoanProcedure, svc.UpdateLoan, opts...),
		LoanServiceRecordPaymentProcedure: connect.NewUnaryHandler(LoanServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
		LoanServiceListPaymentsProcedure:  connect.NewUnaryHandler(LoanServiceListPaymentsProcedure, svc.ListPayments, opts...),
		LoanServiceMarkPaidProcedure:      connect.NewUnaryHandler(LoanServiceMarkPaidProcedure, svc.MarkPaid, opts...),
		LoanServiceSummaryProcedure:       connect.NewUnaryHandler(LoanServiceSummaryProcedure, svc.Summary, opts...),
	}
}

// NewReminderServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewReminderServiceHandler(svc ReminderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ReminderServiceName + "/", routes{
		ReminderServiceComputeRemindersProcedure: connect.NewUnaryHandler(ReminderServiceComputeRemindersProcedure, svc.ComputeReminders, opts...),
	}
}
