package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/lendbook/internal/models"
	"github.com/mmynk/lendbook/internal/storage"
)

const accountColumns = `id, username, full_name, email, password_hash, created_at, updated_at`

// CreateAccount inserts a new account into the database.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	now := s.timestamp()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		account.ID,
		account.Username,
		account.FullName,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if cerr := constraintError(err, "account", "username or email already exists", ""); cerr != nil {
		return cerr
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccount retrieves an account by its ID.
func (s *SQLiteStore) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.getAccountBy(ctx, "id", id)
}

// GetAccountByUsername retrieves an account by its username.
func (s *SQLiteStore) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.getAccountBy(ctx, "username", username)
}

// getAccountBy looks up one account by a unique column. column is never user input.
func (s *SQLiteStore) getAccountBy(ctx context.Context, column, value string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE `+column+` = ?`,
		value,
	).Scan(
		&account.ID,
		&account.Username,
		&account.FullName,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Account not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by %s: %w", column, err)
	}

	return account, nil
}

// UpdateAccount replaces the profile fields of an existing account.
func (s *SQLiteStore) UpdateAccount(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = s.timestamp()

	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET username = ?, full_name = ?, email = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
	`,
		account.Username,
		account.FullName,
		account.Email,
		account.PasswordHash,
		account.UpdatedAt,
		account.ID,
	)
	if cerr := constraintError(err, "account", "username or email already exists", ""); cerr != nil {
		return cerr
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: account %s", storage.ErrNotFound, account.ID)
	}

	return nil
}

// ListAccountIDs returns the IDs of every account, oldest first.
func (s *SQLiteStore) ListAccountIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return ids, nil
}
