// Package models defines the core domain models for lendbook.
//
// # Models
//
//   - Account: the single owner of loan records (the "admin" of the tracker)
//   - Status: a data-driven repayment state label (Pending, Partially Paid, Paid, Overdue)
//   - LoanRecord: money lent to one counterparty
//   - Payment: one repayment event against a LoanRecord
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed as ID strings (or ints for statuses)
// 2. **Denormalized running total**: LoanRecord.MoneyReturned is kept alongside the Payment
//    ledger and both are written in one transaction
// 3. **Date-only due dates**: DueDate is a "YYYY-MM-DD" string, no time of day or zone
// 4. **Derived values live in calculator**: outstanding balance and the settled predicate
//    are computed, never stored
package models
