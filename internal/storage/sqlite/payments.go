package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/lendbook/internal/models"
	"github.com/mmynk/lendbook/internal/storage"
)

// RecordPayment appends a payment to a loan record and increments its money
// returned by the same amount. Both writes share one transaction, so readers
// see either neither or both.
func (s *SQLiteStore) RecordPayment(ctx context.Context, loanID string, amount float64, notes string) (*models.Payment, error) {
	now := s.timestamp()
	payment := &models.Payment{
		ID:          uuid.New().String(),
		LoanID:      loanID,
		Amount:      amount,
		PaymentDate: now,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.withTx(ctx, func(ctx context.Context, tx dbtx) error {
		// The update goes first so the transaction takes the write lock
		// before any read.
		res, err := tx.ExecContext(ctx,
			`UPDATE loan_records SET money_returned = money_returned + ?, updated_at = ? WHERE id = ?`,
			amount, now, loanID,
		)
		if err != nil {
			return fmt.Errorf("failed to update money returned: %w", err)
		}
		if err := requireOneRow(res, "loan record", loanID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO payments (id, loan_id, amount, payment_date, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			payment.ID, payment.LoanID, payment.Amount, payment.PaymentDate,
			nullable(payment.Notes), payment.CreatedAt, payment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// ListPayments retrieves all payments of a loan record, newest payment date first.
func (s *SQLiteStore) ListPayments(ctx context.Context, loanID string) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, loan_id, amount, payment_date, notes, created_at, updated_at
		FROM payments WHERE loan_id = ?
		ORDER BY payment_date DESC, rowid DESC
	`, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var (
			p    models.Payment
			note sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &p.PaymentDate, &note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Notes = note.String
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// ReconcilePayments returns the sum of the payment ledger next to the stored
// money returned. The running total stays the source of truth; this is an
// integrity check only. Both values come from one statement, so they share a
// snapshot and a concurrent RecordPayment is seen in full or not at all.
func (s *SQLiteStore) ReconcilePayments(ctx context.Context, loanID string) (float64, float64, error) {
	var ledgerSum, moneyReturned float64
	err := s.db.QueryRowContext(ctx, `
		SELECT l.money_returned,
			(SELECT COALESCE(SUM(p.amount), 0) FROM payments p WHERE p.loan_id = l.id)
		FROM loan_records l WHERE l.id = ?
	`, loanID).Scan(&moneyReturned, &ledgerSum)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, fmt.Errorf("%w: loan record %s", storage.ErrNotFound, loanID)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to reconcile payments: %w", err)
	}

	return ledgerSum, moneyReturned, nil
}
