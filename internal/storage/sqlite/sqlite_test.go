package sqlite

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/lendbook/internal/models"
	"github.com/mmynk/lendbook/internal/storage"
)

// newTestStore opens a migrated store in a temp directory.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to create store")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// createAccount inserts an account with a unique username and email.
func createAccount(t *testing.T, store *SQLiteStore, username string) *models.Account {
	t.Helper()

	account := &models.Account{
		Username:     username,
		FullName:     strings.ToUpper(username[:1]) + username[1:],
		Email:        username + "@example.com",
		PasswordHash: "hash-" + username,
	}
	require.NoError(t, store.CreateAccount(context.Background(), account))
	return account
}

func TestNew_StoreUnavailable(t *testing.T) {
	// A regular file where the parent directory should be.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	_, err := New(filepath.Join(blocker, "test.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrStoreUnavailable), "got %v", err)
}

func TestAccounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateAccount assigns ID and timestamps", func(t *testing.T) {
		account := createAccount(t, store, "alice")

		assert.NotEmpty(t, account.ID)
		assert.NotEmpty(t, account.CreatedAt)
		assert.Equal(t, account.CreatedAt, account.UpdatedAt)

		got, err := store.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Equal(t, "hash-alice", got.PasswordHash)
	})

	t.Run("duplicate username is a constraint violation", func(t *testing.T) {
		err := store.CreateAccount(ctx, &models.Account{
			Username: "alice", FullName: "Other", Email: "other@example.com", PasswordHash: "x",
		})
		assert.ErrorIs(t, err, storage.ErrConstraintViolation)
		assert.ErrorContains(t, err, "username or email already exists")
	})

	t.Run("duplicate caller-supplied ID names the ID", func(t *testing.T) {
		alice, err := store.GetAccountByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, alice)

		err = store.CreateAccount(ctx, &models.Account{
			ID: alice.ID, Username: "alias", FullName: "Alias", Email: "alias@example.com", PasswordHash: "x",
		})
		assert.ErrorIs(t, err, storage.ErrConstraintViolation)
		assert.ErrorContains(t, err, "account id already exists")
	})

	t.Run("duplicate email is a constraint violation", func(t *testing.T) {
		err := store.CreateAccount(ctx, &models.Account{
			Username: "alice2", FullName: "Other", Email: "alice@example.com", PasswordHash: "x",
		})
		assert.ErrorIs(t, err, storage.ErrConstraintViolation)
	})

	t.Run("lookups report a miss as nil without error", func(t *testing.T) {
		got, err := store.GetAccount(ctx, "nonexistent-id")
		assert.NoError(t, err)
		assert.Nil(t, got)

		got, err = store.GetAccountByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("UpdateAccount replaces fields and rejects clashes", func(t *testing.T) {
		bob := createAccount(t, store, "bob")

		bob.FullName = "Robert"
		bob.Email = "robert@example.com"
		require.NoError(t, store.UpdateAccount(ctx, bob))

		got, err := store.GetAccountByUsername(ctx, "bob")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Robert", got.FullName)
		assert.Equal(t, "robert@example.com", got.Email)

		bob.Username = "alice"
		assert.ErrorIs(t, store.UpdateAccount(ctx, bob), storage.ErrConstraintViolation)
	})

	t.Run("UpdateAccount on unknown ID is not found", func(t *testing.T) {
		err := store.UpdateAccount(ctx, &models.Account{
			ID: "missing", Username: "ghost", FullName: "Ghost", Email: "ghost@example.com", PasswordHash: "x",
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListAccountIDs returns every account", func(t *testing.T) {
		ids, err := store.ListAccountIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})
}

func TestListStatuses_SeedsDefaultsOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		statuses, err := store.ListStatuses(ctx)
		require.NoError(t, err)
		require.Len(t, statuses, 4)

		names := make([]string, len(statuses))
		for j, st := range statuses {
			names[j] = st.Name
		}
		assert.Equal(t, []string{"Pending", "Partially Paid", "Paid", "Overdue"}, names)
		assert.Equal(t, "#32CD32", statuses[2].Color)
	}
}

func TestLoanRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createAccount(t, store, "carol")

	t.Run("CreateLoanRecord defaults status and money returned", func(t *testing.T) {
		id, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{
			Name:          "Dave",
			Phone:         "555-0100",
			MoneyProvided: 500,
			DueDate:       "2024-06-11",
		})
		require.NoError(t, err)

		loan, err := store.GetLoanRecord(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, loan)
		assert.Equal(t, "Pending", loan.StatusName)
		assert.Equal(t, "#FFA500", loan.StatusColor)
		assert.Equal(t, 0.0, loan.MoneyReturned)
		assert.Equal(t, "555-0100", loan.Phone)
		assert.Empty(t, loan.Email)
		assert.Equal(t, "2024-06-11", loan.DueDate)
	})

	t.Run("GetLoanRecord miss is nil without error", func(t *testing.T) {
		loan, err := store.GetLoanRecord(ctx, "nonexistent-id")
		assert.NoError(t, err)
		assert.Nil(t, loan)
	})

	t.Run("unknown account is a constraint violation", func(t *testing.T) {
		_, err := store.CreateLoanRecord(ctx, "no-such-account", models.LoanInput{Name: "X", MoneyProvided: 1})
		assert.ErrorIs(t, err, storage.ErrConstraintViolation)
		assert.ErrorContains(t, err, "unknown account or status")
	})

	t.Run("missing required value is not reported as a foreign key", func(t *testing.T) {
		// NaN is bound as NULL.
		_, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: "X", MoneyProvided: math.NaN()})
		assert.ErrorIs(t, err, storage.ErrConstraintViolation)
		assert.ErrorContains(t, err, "loan record is missing a required value")
	})

	t.Run("UpdateLoanRecord is a full replace", func(t *testing.T) {
		id, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{
			Name: "Erin", Email: "erin@example.com", MoneyProvided: 100, MoneyReturned: 40, Notes: "lunch",
		})
		require.NoError(t, err)

		statuses, err := store.ListStatuses(ctx)
		require.NoError(t, err)

		// Money returned is not forwarded, so it becomes zero.
		require.NoError(t, store.UpdateLoanRecord(ctx, id, models.LoanInput{
			Name: "Erin B", MoneyProvided: 120, DueDate: "2024-07-01", StatusID: statuses[1].ID,
		}))

		loan, err := store.GetLoanRecord(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Erin B", loan.Name)
		assert.Empty(t, loan.Email)
		assert.Empty(t, loan.Notes)
		assert.Equal(t, 120.0, loan.MoneyProvided)
		assert.Equal(t, 0.0, loan.MoneyReturned)
		assert.Equal(t, "Partially Paid", loan.StatusName)
		assert.GreaterOrEqual(t, loan.UpdatedAt, loan.CreatedAt)
	})

	t.Run("UpdateLoanRecord on unknown ID is not found", func(t *testing.T) {
		err := store.UpdateLoanRecord(ctx, "missing", models.LoanInput{Name: "X"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("UpdateLoanRecord with unknown status is a constraint violation", func(t *testing.T) {
		id, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: "Fay", MoneyProvided: 10})
		require.NoError(t, err)
		err = store.UpdateLoanRecord(ctx, id, models.LoanInput{Name: "Fay", MoneyProvided: 10, StatusID: 999})
		assert.ErrorIs(t, err, storage.ErrConstraintViolation)
	})
}

func TestListLoanRecords_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createAccount(t, store, "gina")
	other := createAccount(t, store, "hank")

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		id, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: name, MoneyProvided: 1})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := store.CreateLoanRecord(ctx, other.ID, models.LoanInput{Name: "not mine", MoneyProvided: 1})
	require.NoError(t, err)

	loans, err := store.ListLoanRecords(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, loans, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{loans[0].Name, loans[1].Name, loans[2].Name})
	assert.Equal(t, ids[2], loans[0].ID)
}

func TestListLoanRecordsByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createAccount(t, store, "ivy")

	pending, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: "Pending one", MoneyProvided: 10})
	require.NoError(t, err)
	paid, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: "Paid one", MoneyProvided: 20})
	require.NoError(t, err)
	require.NoError(t, store.MarkPaid(ctx, paid))

	got, err := store.ListLoanRecordsByStatus(ctx, owner.ID, "Paid")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, paid, got[0].ID)

	got, err = store.ListLoanRecordsByStatus(ctx, owner.ID, "Pending")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending, got[0].ID)

	got, err = store.ListLoanRecordsByStatus(ctx, owner.ID, "All")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.ListLoanRecordsByStatus(ctx, owner.ID, "Overdue")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMarkPaid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createAccount(t, store, "jack")

	id, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: "Kim", MoneyProvided: 250, MoneyReturned: 50})
	require.NoError(t, err)

	require.NoError(t, store.MarkPaid(ctx, id))

	loan, err := store.GetLoanRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 250.0, loan.MoneyReturned)
	assert.Equal(t, "Paid", loan.StatusName)

	assert.ErrorIs(t, store.MarkPaid(ctx, "missing"), storage.ErrNotFound)
}

func TestPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createAccount(t, store, "lena")

	loanID, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: "Mo", MoneyProvided: 1000})
	require.NoError(t, err)

	t.Run("RecordPayment increments money returned", func(t *testing.T) {
		p, err := store.RecordPayment(ctx, loanID, 150, "first")
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, loanID, p.LoanID)

		_, err = store.RecordPayment(ctx, loanID, 50.5, "")
		require.NoError(t, err)

		loan, err := store.GetLoanRecord(ctx, loanID)
		require.NoError(t, err)
		assert.InDelta(t, 200.5, loan.MoneyReturned, 1e-9)
	})

	t.Run("ListPayments newest first", func(t *testing.T) {
		payments, err := store.ListPayments(ctx, loanID)
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, 50.5, payments[0].Amount)
		assert.Empty(t, payments[0].Notes)
		assert.Equal(t, 150.0, payments[1].Amount)
		assert.Equal(t, "first", payments[1].Notes)
	})

	t.Run("ledger reconciles with money returned", func(t *testing.T) {
		sum, returned, err := store.ReconcilePayments(ctx, loanID)
		require.NoError(t, err)
		assert.InDelta(t, returned, sum, 1e-9)
	})

	t.Run("unknown loan writes nothing", func(t *testing.T) {
		_, err := store.RecordPayment(ctx, "missing", 10, "")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		payments, err := store.ListPayments(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, payments)

		_, _, err = store.ReconcilePayments(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestReconcilePayments_ConcurrentWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createAccount(t, store, "nina")

	loanID, err := store.CreateLoanRecord(ctx, owner.ID, models.LoanInput{Name: "Oz", MoneyProvided: 1000})
	require.NoError(t, err)

	const payments = 50
	done := make(chan error, 1)
	go func() {
		for i := 0; i < payments; i++ {
			if _, err := store.RecordPayment(ctx, loanID, 1, ""); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for {
		sum, returned, err := store.ReconcilePayments(ctx, loanID)
		require.NoError(t, err)
		require.Equal(t, returned, sum, "ledger and running total read from different states")

		select {
		case err := <-done:
			require.NoError(t, err)
			sum, returned, err = store.ReconcilePayments(ctx, loanID)
			require.NoError(t, err)
			assert.Equal(t, float64(payments), sum)
			assert.Equal(t, float64(payments), returned)
			return
		default:
		}
	}
}
