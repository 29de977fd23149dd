package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/lendbook/internal/models"
)

// ListStatuses returns all statuses ordered by sort order.
// The default taxonomy is seeded the first time the table is found empty.
func (s *SQLiteStore) ListStatuses(ctx context.Context) ([]models.Status, error) {
	if err := s.withTx(ctx, s.seedStatuses); err != nil {
		return nil, fmt.Errorf("failed to seed statuses: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(color, ''), sort_order FROM statuses ORDER BY sort_order ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []models.Status
	for rows.Next() {
		var st models.Status
		if err := rows.Scan(&st.ID, &st.Name, &st.Color, &st.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statuses: %w", err)
	}

	return statuses, nil
}

// seedStatuses inserts the default statuses when none exist.
func (s *SQLiteStore) seedStatuses(ctx context.Context, tx dbtx) error {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM statuses`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := s.timestamp()
	for _, st := range models.DefaultStatuses() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO statuses (name, color, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			st.Name, st.Color, st.SortOrder, now, now,
		); err != nil {
			return err
		}
	}
	return nil
}

// defaultStatusID returns the status with the lowest sort order.
func (s *SQLiteStore) defaultStatusID(ctx context.Context, tx dbtx) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM statuses ORDER BY sort_order ASC, id ASC LIMIT 1`,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve default status: %w", err)
	}
	return id, nil
}

// paidStatusID returns the status named "Paid", compared case-insensitively.
func (s *SQLiteStore) paidStatusID(ctx context.Context, tx dbtx) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM statuses WHERE lower(trim(name)) = lower(?) ORDER BY sort_order ASC LIMIT 1`,
		models.PaidStatusName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve paid status: %w", err)
	}
	return id, nil
}
