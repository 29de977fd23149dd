package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/lendbook/internal/models"
	"github.com/mmynk/lendbook/internal/storage"
)

// loanSelect joins a loan record with its status name and color.
const loanSelect = `
	SELECT l.id, l.account_id, l.name, l.phone, l.email,
	       l.money_provided, l.money_returned, l.due_date, l.notes,
	       COALESCE(l.status_id, 0), COALESCE(st.name, ''), COALESCE(st.color, ''),
	       l.created_at, l.updated_at
	FROM loan_records l
	LEFT JOIN statuses st ON l.status_id = st.id`

// loanOrder lists the newest record first. rowid breaks ties between records
// created within the same clock tick.
const loanOrder = ` ORDER BY l.created_at DESC, l.rowid DESC`

// CreateLoanRecord persists a new loan record and returns its ID.
func (s *SQLiteStore) CreateLoanRecord(ctx context.Context, accountID string, in models.LoanInput) (string, error) {
	id := uuid.New().String()

	err := s.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		statusID, err := s.resolveStatusID(ctx, tx, in.StatusID)
		if err != nil {
			return err
		}

		now := s.timestamp()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO loan_records (id, account_id, name, phone, email, money_provided, money_returned,
			                          due_date, notes, status_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			id, accountID, in.Name, nullable(in.Phone), nullable(in.Email),
			in.MoneyProvided, in.MoneyReturned,
			nullable(in.DueDate), nullable(in.Notes), statusID, now, now,
		)
		if cerr := constraintError(err, "loan record", "", "unknown account or status"); cerr != nil {
			return cerr
		}
		if err != nil {
			return fmt.Errorf("failed to insert loan record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// resolveStatusID maps a zero status to the lowest sort order status,
// seeding the taxonomy when needed.
func (s *SQLiteStore) resolveStatusID(ctx context.Context, tx dbtx, statusID int64) (int64, error) {
	if statusID != 0 {
		return statusID, nil
	}
	if err := s.seedStatuses(ctx, tx); err != nil {
		return 0, fmt.Errorf("failed to seed statuses: %w", err)
	}
	return s.defaultStatusID(ctx, tx)
}

// ListLoanRecords retrieves all loan records of an account, most recent first.
func (s *SQLiteStore) ListLoanRecords(ctx context.Context, accountID string) ([]models.LoanRecord, error) {
	return s.queryLoans(ctx, loanSelect+` WHERE l.account_id = ?`+loanOrder, accountID)
}

// ListLoanRecordsByStatus retrieves the account's loan records with the given status name.
func (s *SQLiteStore) ListLoanRecordsByStatus(ctx context.Context, accountID, statusName string) ([]models.LoanRecord, error) {
	if statusName == "" || strings.EqualFold(statusName, "All") {
		return s.ListLoanRecords(ctx, accountID)
	}
	return s.queryLoans(ctx, loanSelect+` WHERE l.account_id = ? AND st.name = ?`+loanOrder, accountID, statusName)
}

// GetLoanRecord retrieves a loan record by ID.
func (s *SQLiteStore) GetLoanRecord(ctx context.Context, id string) (*models.LoanRecord, error) {
	loans, err := s.queryLoans(ctx, loanSelect+` WHERE l.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return nil, nil // Loan record not found
	}
	return &loans[0], nil
}

// UpdateLoanRecord replaces the mutable fields of a loan record.
// A zero StatusID resolves to the default status, as on create.
func (s *SQLiteStore) UpdateLoanRecord(ctx context.Context, id string, in models.LoanInput) error {
	return s.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		statusID, err := s.resolveStatusID(ctx, tx, in.StatusID)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE loan_records
			SET name = ?, phone = ?, email = ?, money_provided = ?, money_returned = ?,
			    due_date = ?, notes = ?, status_id = ?, updated_at = ?
			WHERE id = ?
		`,
			in.Name, nullable(in.Phone), nullable(in.Email), in.MoneyProvided, in.MoneyReturned,
			nullable(in.DueDate), nullable(in.Notes), statusID, s.timestamp(), id,
		)
		if cerr := constraintError(err, "loan record", "", fmt.Sprintf("unknown status %d", statusID)); cerr != nil {
			return cerr
		}
		if err != nil {
			return fmt.Errorf("failed to update loan record: %w", err)
		}
		return requireOneRow(res, "loan record", id)
	})
}

// MarkPaid settles a loan record: money returned becomes money provided and
// the status becomes "Paid".
func (s *SQLiteStore) MarkPaid(ctx context.Context, id string) error {
	return s.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		if err := s.seedStatuses(ctx, tx); err != nil {
			return fmt.Errorf("failed to seed statuses: %w", err)
		}
		paidID, err := s.paidStatusID(ctx, tx)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE loan_records
			SET money_returned = money_provided, status_id = ?, updated_at = ?
			WHERE id = ?
		`, paidID, s.timestamp(), id)
		if err != nil {
			return fmt.Errorf("failed to mark loan record paid: %w", err)
		}
		return requireOneRow(res, "loan record", id)
	})
}

// queryLoans runs a loanSelect query and scans every row.
func (s *SQLiteStore) queryLoans(ctx context.Context, query string, args ...interface{}) ([]models.LoanRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan records: %w", err)
	}
	defer rows.Close()

	var loans []models.LoanRecord
	for rows.Next() {
		var (
			loan                        models.LoanRecord
			phone, email, dueDate, note sql.NullString
		)
		if err := rows.Scan(
			&loan.ID, &loan.AccountID, &loan.Name, &phone, &email,
			&loan.MoneyProvided, &loan.MoneyReturned, &dueDate, &note,
			&loan.StatusID, &loan.StatusName, &loan.StatusColor,
			&loan.CreatedAt, &loan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan record: %w", err)
		}
		loan.Phone = phone.String
		loan.Email = email.String
		loan.DueDate = dueDate.String
		loan.Notes = note.String

		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan records: %w", err)
	}

	return loans, nil
}

// requireOneRow turns a zero-row write into storage.ErrNotFound.
func requireOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", storage.ErrNotFound, kind, id)
	}
	return nil
}
