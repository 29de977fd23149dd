// Package api defines the lendbook Connect API: request and response
// messages, procedure names, handler constructors and typed clients.
//
// Messages are plain Go structs carried as JSON, so there is no code
// generation step. Clients must be created with the constructors here so
// they speak the same codec.
package api

const (
	AccountServiceName  = "lendbook.v1.AccountService"
	LoanServiceName     = "lendbook.v1.LoanService"
	ReminderServiceName = "lendbook.v1.ReminderService"
)

const (
	AccountServiceRegisterProcedure      = "/lendbook.v1.AccountService/Register"
	AccountServiceLoginProcedure         = "/lendbook.v1.AccountService/Login"
	AccountServiceGetProfileProcedure    = "/lendbook.v1.AccountService/GetProfile"
	AccountServiceUpdateProfileProcedure = "/lendbook.v1.AccountService/UpdateProfile"

	LoanServiceListStatusesProcedure  = "/lendbook.v1.LoanService/ListStatuses"
	LoanServiceCreateLoanProcedure    = "/lendbook.v1.LoanService/CreateLoan"
	LoanServiceListLoansProcedure     = "/lendbook.v1.LoanService/ListLoans"
	LoanServiceGetLoanProcedure       = "/lendbook.v1.LoanService/GetLoan"
	LoanServiceUpdateLoanProcedure    = "/lendbook.v1.LoanService/UpdateLoan"
	LoanServiceRecordPaymentProcedure = "/lendbook.v1.LoanService/RecordPayment"
	LoanServiceListPaymentsProcedure  = "/lendbook.v1.LoanService/ListPayments"
	LoanServiceMarkPaidProcedure      = "/lendbook.v1.LoanService/MarkPaid"
	LoanServiceSummaryProcedure       = "/lendbook.v1.LoanService/Summary"

	ReminderServiceComputeRemindersProcedure = "/lendbook.v1.ReminderService/ComputeReminders"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{
	AccountServiceRegisterProcedure,
	AccountServiceLoginProcedure,
}
