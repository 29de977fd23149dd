package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/lendbook/internal/auth"
	"github.com/mmynk/lendbook/internal/calculator"
	"github.com/mmynk/lendbook/internal/middleware"
	"github.com/mmynk/lendbook/internal/models"
	"github.com/mmynk/lendbook/internal/storage"
	"github.com/mmynk/lendbook/pkg/api"
)

// LoanService implements the LoanService RPC interface. Every call is scoped
// to the account carried in the request context.
type LoanService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewLoanService creates a new LoanService with the given storage backend.
func NewLoanService(store storage.Store, logger *slog.Logger) *LoanService {
	return &LoanService{store: store, logger: logger}
}

func requireAccount(ctx context.Context) (string, error) {
	accountID := middleware.GetAccountID(ctx)
	if accountID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return accountID, nil
}

// ownedLoan loads a record and hides records of other accounts behind NotFound.
func (s *LoanService) ownedLoan(ctx context.Context, accountID, loanID string) (*models.LoanRecord, error) {
	loan, err := s.store.GetLoanRecord(ctx, loanID)
	if err != nil {
		s.logger.Error("Failed to load loan record", "loan_id", loanID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if loan == nil || loan.AccountID != accountID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("loan record %s: %w", loanID, storage.ErrNotFound))
	}
	return loan, nil
}

// checkStatus rejects a non-zero status ID that is not in the taxonomy.
func (s *LoanService) checkStatus(ctx context.Context, statusID int64) error {
	if statusID == 0 {
		return nil
	}

	statuses, err := s.store.ListStatuses(ctx)
	if err != nil {
		return connect.NewError(connect.CodeInternal, err)
	}
	for _, st := range statuses {
		if st.ID == statusID {
			return nil
		}
	}
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown status id %d", statusID))
}

// ListStatuses returns the status taxonomy in display order.
func (s *LoanService) ListStatuses(ctx context.Context, req *connect.Request[api.ListStatusesRequest]) (*connect.Response[api.ListStatusesResponse], error) {
	statuses, err := s.store.ListStatuses(ctx)
	if err != nil {
		s.logger.Error("ListStatuses failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.Status, len(statuses))
	for i, st := range statuses {
		out[i] = toAPIStatus(st)
	}
	return connect.NewResponse(&api.ListStatusesResponse{Statuses: out}), nil
}

// CreateLoan records money lent to a counterparty.
func (s *LoanService) CreateLoan(ctx context.Context, req *connect.Request[api.CreateLoanRequest]) (*connect.Response[api.CreateLoanResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateLoan request received",
		"account_id", accountID,
		"name", req.Msg.Loan.Name,
		"due_date", req.Msg.Loan.DueDate,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := s.checkStatus(ctx, req.Msg.Loan.StatusID); err != nil {
		return nil, err
	}

	id, err := s.store.CreateLoanRecord(ctx, accountID, toLoanInput(req.Msg.Loan))
	if err != nil {
		s.logger.Error("CreateLoan failed", "error", err)
		return nil, toConnectError(err)
	}

	loan, err := s.ownedLoan(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Loan record created", "loan_id", id)
	return connect.NewResponse(&api.CreateLoanResponse{Loan: toAPILoan(*loan)}), nil
}

// ListLoans lists the account's records, newest first, optionally filtered by status name.
func (s *LoanService) ListLoans(ctx context.Context, req *connect.Request[api.ListLoansRequest]) (*connect.Response[api.ListLoansResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.store.ListLoanRecordsByStatus(ctx, accountID, req.Msg.Status)
	if err != nil {
		s.logger.Error("ListLoans failed", "account_id", accountID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.LoanRecord, len(loans))
	for i, l := range loans {
		out[i] = toAPILoan(l)
	}

	s.logger.Info("ListLoans successful", "account_id", accountID, "status", req.Msg.Status, "count", len(out))
	return connect.NewResponse(&api.ListLoansResponse{Loans: out}), nil
}

// GetLoan returns one record.
func (s *LoanService) GetLoan(ctx context.Context, req *connect.Request[api.GetLoanRequest]) (*connect.Response[api.GetLoanResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	loan, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetLoanResponse{Loan: toAPILoan(*loan)}), nil
}

// UpdateLoan replaces every editable field of a record.
func (s *LoanService) UpdateLoan(ctx context.Context, req *connect.Request[api.UpdateLoanRequest]) (*connect.Response[api.UpdateLoanResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateLoan request received", "account_id", accountID, "loan_id", req.Msg.LoanID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID); err != nil {
		return nil, err
	}
	if err := s.checkStatus(ctx, req.Msg.Loan.StatusID); err != nil {
		return nil, err
	}

	if err := s.store.UpdateLoanRecord(ctx, req.Msg.LoanID, toLoanInput(req.Msg.Loan)); err != nil {
		s.logger.Error("UpdateLoan failed", "loan_id", req.Msg.LoanID, "error", err)
		return nil, toConnectError(err)
	}

	loan, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Loan record updated", "loan_id", req.Msg.LoanID)
	return connect.NewResponse(&api.UpdateLoanResponse{Loan: toAPILoan(*loan)}), nil
}

// RecordPayment appends a payment and raises the record's returned total.
func (s *LoanService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("RecordPayment request received",
		"account_id", accountID,
		"loan_id", req.Msg.LoanID,
		"amount", req.Msg.Amount,
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID); err != nil {
		return nil, err
	}

	payment, err := s.store.RecordPayment(ctx, req.Msg.LoanID, req.Msg.Amount, req.Msg.Notes)
	if err != nil {
		s.logger.Error("RecordPayment failed", "loan_id", req.Msg.LoanID, "error", err)
		return nil, toConnectError(err)
	}

	loan, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded", "payment_id", payment.ID, "loan_id", loan.ID, "money_returned", loan.MoneyReturned)
	return connect.NewResponse(&api.RecordPaymentResponse{
		Payment: toAPIPayment(*payment),
		Loan:    toAPILoan(*loan),
	}), nil
}

// ListPayments returns a record's payment history, newest first.
func (s *LoanService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID); err != nil {
		return nil, err
	}

	payments, err := s.store.ListPayments(ctx, req.Msg.LoanID)
	if err != nil {
		s.logger.Error("ListPayments failed", "loan_id", req.Msg.LoanID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.Payment, len(payments))
	for i, p := range payments {
		out[i] = toAPIPayment(p)
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}

// MarkPaid settles a record in full.
func (s *LoanService) MarkPaid(ctx context.Context, req *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.MarkPaidResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("MarkPaid request received", "account_id", accountID, "loan_id", req.Msg.LoanID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if _, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID); err != nil {
		return nil, err
	}

	if err := s.store.MarkPaid(ctx, req.Msg.LoanID); err != nil {
		s.logger.Error("MarkPaid failed", "loan_id", req.Msg.LoanID, "error", err)
		return nil, toConnectError(err)
	}

	loan, err := s.ownedLoan(ctx, accountID, req.Msg.LoanID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.MarkPaidResponse{Loan: toAPILoan(*loan)}), nil
}

// Summary aggregates the account's records per status.
func (s *LoanService) Summary(ctx context.Context, req *connect.Request[api.SummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	accountID, err := requireAccount(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := s.store.ListStatuses(ctx)
	if err != nil {
		s.logger.Error("Summary failed to list statuses", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	loans, err := s.store.ListLoanRecords(ctx, accountID)
	if err != nil {
		s.logger.Error("Summary failed to list loans", "account_id", accountID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	summaries := calculator.Summarize(statuses, loans)
	out := make([]api.LoanSummary, len(summaries))
	for i, sum := range summaries {
		out[i] = toAPISummary(sum)
	}
	return connect.NewResponse(&api.SummaryResponse{Summaries: out}), nil
}
