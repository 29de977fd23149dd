package auth

import (
	"context"

	"github.com/mmynk/lendbook/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the credential check (password, passkeys, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new account with the given profile and credential.
	// Returns the created account or an error if registration fails.
	Register(ctx context.Context, username, fullName, email, credential string) (*models.Account, error)

	// Authenticate verifies the credentials and returns the matching account.
	// An unknown username or a wrong credential returns nil, nil.
	Authenticate(ctx context.Context, username, credential string) (*models.Account, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error

	// HashCredential validates and hashes a credential for storage.
	HashCredential(credential string) (string, error)
}
