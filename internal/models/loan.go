package models

// DueDateLayout is the storage layout of LoanRecord.DueDate.
const DueDateLayout = "2006-01-02"

// LoanRecord represents money lent to one counterparty by one account.
type LoanRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string

	// AccountID is the owning account.
	AccountID string

	// Name is the counterparty's name.
	Name string

	// Phone and Email are optional counterparty contact details.
	Phone string
	Email string

	// MoneyProvided is the amount lent.
	MoneyProvided float64

	// MoneyReturned is the running total of repayments. RecordPayment increments
	// it in the same transaction that appends the Payment.
	MoneyReturned float64

	// DueDate is "YYYY-MM-DD" or empty when no due date is set.
	DueDate string

	Notes string

	// StatusID references Status. StatusName and StatusColor are joined in on reads.
	StatusID    int64
	StatusName  string
	StatusColor string

	CreatedAt string
	UpdatedAt string
}

// LoanInput carries the editable fields of a LoanRecord.
// Updates replace every field; callers forward previous values for fields
// they do not intend to change.
type LoanInput struct {
	Name          string
	Phone         string
	Email         string
	MoneyProvided float64
	MoneyReturned float64
	DueDate       string
	Notes         string

	// StatusID zero means "lowest sort order status" on create.
	StatusID int64
}

// LoanSummary aggregates an account's records for one status bucket.
type LoanSummary struct {
	StatusName    string
	Count         int
	TotalProvided float64
	TotalReturned float64
	Outstanding   float64
}
