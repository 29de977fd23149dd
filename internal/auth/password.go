package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/lendbook/internal/models"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrUsernameExists     = errors.New("username already registered")
)

// AccountStorage defines the account persistence the authenticator needs.
type AccountStorage interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage AccountStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage AccountStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// HashCredential validates the password and returns its bcrypt hash.
func (a *PasswordAuthenticator) HashCredential(credential string) (string, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates a new account with a hashed password.
// A duplicate email surfaces as storage.ErrConstraintViolation from the store.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, fullName, email, credential string) (*models.Account, error) {
	hashed, err := a.HashCredential(credential)
	if err != nil {
		return nil, err
	}

	existing, err := a.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	account := &models.Account{
		Username:     username,
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := a.storage.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Authenticate verifies the username and password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.Account, error) {
	account, err := a.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(credential)); err != nil {
		return nil, nil
	}

	return account, nil
}
