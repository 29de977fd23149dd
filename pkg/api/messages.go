package api

// Account is the public view of an account. The password hash never leaves the server.
type Account struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterResponse struct {
	Account Account `json:"account"`
	Token   string  `json:"token"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Account Account `json:"account"`
	Token   string  `json:"token"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Account Account `json:"account"`
}

// UpdateProfileRequest replaces the profile. An empty Password keeps the current one.
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type UpdateProfileResponse struct {
	Account Account `json:"account"`
}

type Status struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

type ListStatusesRequest struct{}

type ListStatusesResponse struct {
	Statuses []Status `json:"statuses"`
}

// LoanFields are the editable fields of a loan record.
type LoanFields struct {
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone,omitempty"`
	Email         string  `json:"email,omitempty" validate:"omitempty,email"`
	MoneyProvided float64 `json:"money_provided" validate:"gte=0"`
	MoneyReturned float64 `json:"money_returned" validate:"gte=0"`
	DueDate       string  `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string  `json:"notes,omitempty"`
	StatusID      int64   `json:"status_id,omitempty" validate:"gte=0"`
}

// LoanRecord is a stored record plus its derived balance.
type LoanRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone,omitempty"`
	Email         string  `json:"email,omitempty"`
	MoneyProvided float64 `json:"money_provided"`
	MoneyReturned float64 `json:"money_returned"`
	Outstanding   float64 `json:"outstanding"`
	Settled       bool    `json:"settled"`
	DueDate       string  `json:"due_date,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	StatusID      int64   `json:"status_id"`
	StatusName    string  `json:"status_name"`
	StatusColor   string  `json:"status_color"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type CreateLoanRequest struct {
	Loan LoanFields `json:"loan"`
}

type CreateLoanResponse struct {
	Loan LoanRecord `json:"loan"`
}

// ListLoansRequest filters by status name; empty or "All" lists everything.
type ListLoansRequest struct {
	Status string `json:"status,omitempty"`
}

type ListLoansResponse struct {
	Loans []LoanRecord `json:"loans"`
}

type GetLoanRequest struct {
	LoanID string `json:"loan_id" validate:"required"`
}

type GetLoanResponse struct {
	Loan LoanRecord `json:"loan"`
}

// UpdateLoanRequest replaces every editable field of the record.
type UpdateLoanRequest struct {
	LoanID string     `json:"loan_id" validate:"required"`
	Loan   LoanFields `json:"loan"`
}

type UpdateLoanResponse struct {
	Loan LoanRecord `json:"loan"`
}

type Payment struct {
	ID          string  `json:"id"`
	LoanID      string  `json:"loan_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type RecordPaymentRequest struct {
	LoanID string  `json:"loan_id" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
	Notes  string  `json:"notes,omitempty"`
}

type RecordPaymentResponse struct {
	Payment Payment    `json:"payment"`
	Loan    LoanRecord `json:"loan"`
}

type ListPaymentsRequest struct {
	LoanID string `json:"loan_id" validate:"required"`
}

type ListPaymentsResponse struct {
	Payments []Payment `json:"payments"`
}

type MarkPaidRequest struct {
	LoanID string `json:"loan_id" validate:"required"`
}

type MarkPaidResponse struct {
	Loan LoanRecord `json:"loan"`
}

type LoanSummary struct {
	StatusName    string  `json:"status_name"`
	Count         int     `json:"count"`
	TotalProvided float64 `json:"total_provided"`
	TotalReturned float64 `json:"total_returned"`
	Outstanding   float64 `json:"outstanding"`
}

type SummaryRequest struct{}

type SummaryResponse struct {
	Summaries []LoanSummary `json:"summaries"`
}

type ReminderNotice struct {
	LoanID       string  `json:"loan_id"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	DaysUntilDue int     `json:"days_until_due"`
	Outstanding  float64 `json:"outstanding"`
	Message      string  `json:"message"`
}

type ComputeRemindersRequest struct{}

type ComputeRemindersResponse struct {
	Messages []string         `json:"messages"`
	Notices  []ReminderNotice `json:"notices"`
}
