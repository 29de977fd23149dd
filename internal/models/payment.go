package models

// Payment represents one repayment against a LoanRecord. Payments are append-only.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// LoanID is the loan record this payment reduces.
	LoanID string

	// Amount is the repaid amount. Positivity is the caller's responsibility.
	Amount float64

	// PaymentDate is an ISO-8601 UTC timestamp.
	PaymentDate string

	// Notes is an optional description.
	Notes string

	CreatedAt string
	UpdatedAt string
}
