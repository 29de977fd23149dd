package models

// Account represents the user who owns and tracks loan records.
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	ID string

	// Username is the login name (unique).
	Username string

	// FullName is the display name shown after login.
	FullName string

	// Email is the account's email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the password. Never the plaintext.
	PasswordHash string

	// CreatedAt and UpdatedAt are ISO-8601 UTC timestamps assigned by the store.
	CreatedAt string
	UpdatedAt string
}
