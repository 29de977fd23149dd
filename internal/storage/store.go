// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/lendbook/internal/models"
)

var (
	// ErrConstraintViolation is returned when a write breaks a uniqueness or
	// foreign key constraint (duplicate username or email, unknown status).
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrNotFound is returned by writes that target a missing row.
	// Lookups report a miss as a nil result with a nil error instead.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable is returned when the store cannot be opened or migrated.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Store defines the interface for loan tracking storage operations.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// CreateAccount persists a new account. ID and timestamps are assigned by the store.
	// Returns ErrConstraintViolation if the username or email is taken.
	CreateAccount(ctx context.Context, account *models.Account) error

	// GetAccount retrieves an account by ID. Returns nil, nil if not found.
	GetAccount(ctx context.Context, id string) (*models.Account, error)

	// GetAccountByUsername retrieves an account by username. Returns nil, nil if not found.
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)

	// UpdateAccount replaces username, full name, email and password hash.
	UpdateAccount(ctx context.Context, account *models.Account) error

	// ListAccountIDs returns every account ID, for background reminder passes.
	ListAccountIDs(ctx context.Context) ([]string, error)

	// ListStatuses returns statuses ordered by sort order, seeding defaults on first use.
	ListStatuses(ctx context.Context) ([]models.Status, error)

	// CreateLoanRecord persists a new loan record for accountID and returns its ID.
	CreateLoanRecord(ctx context.Context, accountID string, in models.LoanInput) (string, error)

	// ListLoanRecords returns the account's records, most recently created first.
	ListLoanRecords(ctx context.Context, accountID string) ([]models.LoanRecord, error)

	// ListLoanRecordsByStatus filters ListLoanRecords by status name. "" and "All" return everything.
	ListLoanRecordsByStatus(ctx context.Context, accountID, statusName string) ([]models.LoanRecord, error)

	// GetLoanRecord retrieves one record joined with its status. Returns nil, nil if not found.
	GetLoanRecord(ctx context.Context, id string) (*models.LoanRecord, error)

	// UpdateLoanRecord replaces every mutable field of the record.
	UpdateLoanRecord(ctx context.Context, id string, in models.LoanInput) error

	// MarkPaid sets money returned to money provided and the status to "Paid".
	MarkPaid(ctx context.Context, id string) error

	// RecordPayment appends a payment and increments money returned atomically.
	RecordPayment(ctx context.Context, loanID string, amount float64, notes string) (*models.Payment, error)

	// ListPayments returns the record's payments, newest payment date first.
	ListPayments(ctx context.Context, loanID string) ([]models.Payment, error)

	// ReconcilePayments returns the ledger sum and the stored running total.
	ReconcilePayments(ctx context.Context, loanID string) (ledgerSum, moneyReturned float64, err error)

	// Close releases any resources held by the store.
	Close() error
}
