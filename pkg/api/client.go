package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// WithToken attaches a session token to every request of a client.
func WithToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient && token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}))
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}

// AccountServiceClient is a client for the account service.
type AccountServiceClient struct {
	register      *connect.Client[RegisterRequest, RegisterResponse]
	login         *connect.Client[LoginRequest, LoginResponse]
	getProfile    *connect.Client[GetProfileRequest, GetProfileResponse]
	updateProfile *connect.Client[UpdateProfileRequest, UpdateProfileResponse]
}

// NewAccountServiceClient constructs a client for the account service.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AccountServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &AccountServiceClient{
		register:      connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AccountServiceRegisterProcedure, opts...),
		login:         connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AccountServiceLoginProcedure, opts...),
		getProfile:    connect.NewClient[GetProfileRequest, GetProfileResponse](httpClient, baseURL+AccountServiceGetProfileProcedure, opts...),
		updateProfile: connect.NewClient[UpdateProfileRequest, UpdateProfileResponse](httpClient, baseURL+AccountServiceUpdateProfileProcedure, opts...),
	}
}

func (c *AccountServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AccountServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AccountServiceClient) GetProfile(ctx context.Context, req *connect.Request[GetProfileRequest]) (*connect.Response[GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

func (c *AccountServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[UpdateProfileRequest]) (*connect.Response[UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// LoanServiceClient is a client for the loan service.
type LoanServiceClient struct {
	listStatuses  *connect.Client[ListStatusesRequest, ListStatusesResponse]
	createLoan    *connect.Client[CreateLoanRequest, CreateLoanResponse]
	listLoans     *connect.Client[ListLoansRequest, ListLoansResponse]
	getLoan       *connect.Client[GetLoanRequest, GetLoanResponse]
	updateLoan    *connect.Client[UpdateLoanRequest, UpdateLoanResponse]
	recordPayment *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	listPayments  *connect.Client[ListPaymentsRequest, ListPaymentsResponse]
	markPaid      *connect.Client[MarkPaidRequest, MarkPaidResponse]
	summary       *connect.Client[SummaryRequest, SummaryResponse]
}

// NewLoanServiceClient constructs a client for the loan service.
func NewLoanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LoanServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &LoanServiceClient{
		listStatuses:  connect.NewClient[ListStatusesRequest, ListStatusesResponse](httpClient, baseURL+LoanServiceListStatusesProcedure, opts...),
		createLoan:    connect.NewClient[CreateLoanRequest, CreateLoanResponse](httpClient, baseURL+LoanServiceCreateLoanProcedure, opts...),
		listLoans:     connect.NewClient[ListLoansRequest, ListLoansResponse](httpClient, baseURL+LoanServiceListLoansProcedure, opts...),
		getLoan:       connect.NewClient[GetLoanRequest, GetLoanResponse](httpClient, baseURL+LoanServiceGetLoanProcedure, opts...),
		updateLoan:    connect.NewClient[UpdateLoanRequest, UpdateLoanResponse](httpClient, baseURL+LoanServiceUpdateLoanProcedure, opts...),
		recordPayment: connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+LoanServiceRecordPaymentProcedure, opts...),
		listPayments:  connect.NewClient[ListPaymentsRequest, ListPaymentsResponse](httpClient, baseURL+LoanServiceListPaymentsProcedure, opts...),
		markPaid:      connect.NewClient[MarkPaidRequest, MarkPaidResponse](httpClient, baseURL+LoanServiceMarkPaidProcedure, opts...),
		summary:       connect.NewClient[SummaryRequest, SummaryResponse](httpClient, baseURL+LoanServiceSummaryProcedure, opts...),
	}
}

func (c *LoanServiceClient) ListStatuses(ctx context.Context, req *connect.Request[ListStatusesRequest]) (*connect.Response[ListStatusesResponse], error) {
	return c.listStatuses.CallUnary(ctx, req)
}

func (c *LoanServiceClient) CreateLoan(ctx context.Context, req *connect.Request[CreateLoanRequest]) (*connect.Response[CreateLoanResponse], error) {
	return c.createLoan.CallUnary(ctx, req)
}

func (c *LoanServiceClient) ListLoans(ctx context.Context, req *connect.Request[ListLoansRequest]) (*connect.Response[ListLoansResponse], error) {
	return c.listLoans.CallUnary(ctx, req)
}

func (c *LoanServiceClient) GetLoan(ctx context.Context, req *connect.Request[GetLoanRequest]) (*connect.Response[GetLoanResponse], error) {
	return c.getLoan.CallUnary(ctx, req)
}

func (c *LoanServiceClient) UpdateLoan(ctx context.Context, req *connect.Request[UpdateLoanRequest]) (*connect.Response[UpdateLoanResponse], error) {
	return c.updateLoan.CallUnary(ctx, req)
}

func (c *LoanServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *LoanServiceClient) ListPayments(ctx context.Context, req *connect.Request[ListPaymentsRequest]) (*connect.Response[ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *LoanServiceClient) MarkPaid(ctx context.Context, req *connect.Request[MarkPaidRequest]) (*connect.Response[MarkPaidResponse], error) {
	return c.markPaid.CallUnary(ctx, req)
}

func (c *LoanServiceClient) Summary(ctx context.Context, req *connect.Request[SummaryRequest]) (*connect.Response[SummaryResponse], error) {
	return c.summary.CallUnary(ctx, req)
}

// ReminderServiceClient is a client for the reminder service.
type ReminderServiceClient struct {
	computeReminders *connect.Client[ComputeRemindersRequest, ComputeRemindersResponse]
}

// NewReminderServiceClient constructs a client for the reminder service.
func NewReminderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ReminderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ReminderServiceClient{
		computeReminders: connect.NewClient[ComputeRemindersRequest, ComputeRemindersResponse](httpClient, baseURL+ReminderServiceComputeRemindersProcedure, opts...),
	}
}

func (c *ReminderServiceClient) ComputeReminders(ctx context.Context, req *connect.Request[ComputeRemindersRequest]) (*connect.Response[ComputeRemindersResponse], error) {
	return c.computeReminders.CallUnary(ctx, req)
}
