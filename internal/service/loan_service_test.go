package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/lendbook/pkg/api"
)

func TestListStatuses(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")

	resp, err := srv.loans(token).ListStatuses(context.Background(), connect.NewRequest(&api.ListStatusesRequest{}))
	if err != nil {
		t.Fatalf("ListStatuses failed: %v", err)
	}

	want := []string{"Pending", "Partially Paid", "Paid", "Overdue"}
	if len(resp.Msg.Statuses) != len(want) {
		t.Fatalf("statuses: expected %d, got %d", len(want), len(resp.Msg.Statuses))
	}
	for i, name := range want {
		if resp.Msg.Statuses[i].Name != name {
			t.Errorf("status %d: expected '%s', got '%s'", i, name, resp.Msg.Statuses[i].Name)
		}
	}
}

func TestCreateLoan_And_GetLoan(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")

	created := srv.createLoan(t, token, api.LoanFields{
		Name:          "Jo",
		Phone:         "555-0100",
		MoneyProvided: 1000,
		DueDate:       "2024-06-11",
	})

	if created.ID == "" {
		t.Fatal("expected non-empty loan ID")
	}
	if created.StatusName != "Pending" {
		t.Errorf("status: expected 'Pending', got '%s'", created.StatusName)
	}
	if created.Outstanding != 1000 {
		t.Errorf("outstanding: expected 1000, got %f", created.Outstanding)
	}

	resp, err := srv.loans(token).GetLoan(context.Background(), connect.NewRequest(&api.GetLoanRequest{LoanID: created.ID}))
	if err != nil {
		t.Fatalf("GetLoan failed: %v", err)
	}
	if resp.Msg.Loan.Phone != "555-0100" {
		t.Errorf("phone: expected '555-0100', got '%s'", resp.Msg.Loan.Phone)
	}
}

func TestCreateLoan_Validation(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")

	tests := []struct {
		name   string
		fields api.LoanFields
	}{
		{"missing name", api.LoanFields{MoneyProvided: 10}},
		{"negative amount", api.LoanFields{Name: "Jo", MoneyProvided: -5}},
		{"malformed due date", api.LoanFields{Name: "Jo", MoneyProvided: 10, DueDate: "11/06/2024"}},
		{"malformed email", api.LoanFields{Name: "Jo", MoneyProvided: 10, Email: "jo-at-example"}},
		{"unknown status", api.LoanFields{Name: "Jo", MoneyProvided: 10, StatusID: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.loans(token).CreateLoan(context.Background(), connect.NewRequest(&api.CreateLoanRequest{Loan: tt.fields}))
			expectCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestLoans_AreScopedToAccount(t *testing.T) {
	srv := setupTestServer(t)
	owner := srv.register(t, "owner")
	other := srv.register(t, "other")

	loan := srv.createLoan(t, owner, api.LoanFields{Name: "Jo", MoneyProvided: 100})

	_, err := srv.loans(other).GetLoan(context.Background(), connect.NewRequest(&api.GetLoanRequest{LoanID: loan.ID}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = srv.loans(other).RecordPayment(context.Background(), connect.NewRequest(&api.RecordPaymentRequest{LoanID: loan.ID, Amount: 10}))
	expectCode(t, err, connect.CodeNotFound)

	resp, err := srv.loans(other).ListLoans(context.Background(), connect.NewRequest(&api.ListLoansRequest{}))
	if err != nil {
		t.Fatalf("ListLoans failed: %v", err)
	}
	if len(resp.Msg.Loans) != 0 {
		t.Errorf("expected no loans for the other account, got %d", len(resp.Msg.Loans))
	}
}

func TestUpdateLoan(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")
	loan := srv.createLoan(t, token, api.LoanFields{Name: "Jo", MoneyProvided: 100, Notes: "lunch"})

	resp, err := srv.loans(token).UpdateLoan(context.Background(), connect.NewRequest(&api.UpdateLoanRequest{
		LoanID: loan.ID,
		Loan:   api.LoanFields{Name: "Joanna", MoneyProvided: 150, DueDate: "2024-07-01"},
	}))
	if err != nil {
		t.Fatalf("UpdateLoan failed: %v", err)
	}

	got := resp.Msg.Loan
	if got.Name != "Joanna" || got.MoneyProvided != 150 || got.DueDate != "2024-07-01" {
		t.Errorf("unexpected record after update: %+v", got)
	}
	if got.Notes != "" {
		t.Errorf("notes: expected full replace to clear notes, got '%s'", got.Notes)
	}

	_, err = srv.loans(token).UpdateLoan(context.Background(), connect.NewRequest(&api.UpdateLoanRequest{
		LoanID: "missing",
		Loan:   api.LoanFields{Name: "X"},
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestRecordPayment_And_ListPayments(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")
	loan := srv.createLoan(t, token, api.LoanFields{Name: "Jo", MoneyProvided: 1000})

	for _, amount := range []float64{200, 300} {
		resp, err := srv.loans(token).RecordPayment(context.Background(), connect.NewRequest(&api.RecordPaymentRequest{
			LoanID: loan.ID,
			Amount: amount,
			Notes:  "cash",
		}))
		if err != nil {
			t.Fatalf("RecordPayment failed: %v", err)
		}
		if resp.Msg.Payment.Amount != amount {
			t.Errorf("payment amount: expected %f, got %f", amount, resp.Msg.Payment.Amount)
		}
	}

	got, err := srv.loans(token).GetLoan(context.Background(), connect.NewRequest(&api.GetLoanRequest{LoanID: loan.ID}))
	if err != nil {
		t.Fatalf("GetLoan failed: %v", err)
	}
	if got.Msg.Loan.MoneyReturned != 500 {
		t.Errorf("money returned: expected 500, got %f", got.Msg.Loan.MoneyReturned)
	}
	if got.Msg.Loan.Outstanding != 500 {
		t.Errorf("outstanding: expected 500, got %f", got.Msg.Loan.Outstanding)
	}

	payments, err := srv.loans(token).ListPayments(context.Background(), connect.NewRequest(&api.ListPaymentsRequest{LoanID: loan.ID}))
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(payments.Msg.Payments) != 2 {
		t.Fatalf("payments: expected 2, got %d", len(payments.Msg.Payments))
	}
	if payments.Msg.Payments[0].Amount != 300 {
		t.Errorf("newest payment first: expected 300, got %f", payments.Msg.Payments[0].Amount)
	}
}

func TestRecordPayment_Rejections(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")
	loan := srv.createLoan(t, token, api.LoanFields{Name: "Jo", MoneyProvided: 100})

	_, err := srv.loans(token).RecordPayment(context.Background(), connect.NewRequest(&api.RecordPaymentRequest{LoanID: loan.ID, Amount: 0}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = srv.loans(token).RecordPayment(context.Background(), connect.NewRequest(&api.RecordPaymentRequest{LoanID: "missing", Amount: 10}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestMarkPaid(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")
	loan := srv.createLoan(t, token, api.LoanFields{Name: "Jo", MoneyProvided: 250, MoneyReturned: 50})

	resp, err := srv.loans(token).MarkPaid(context.Background(), connect.NewRequest(&api.MarkPaidRequest{LoanID: loan.ID}))
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}

	got := resp.Msg.Loan
	if got.StatusName != "Paid" {
		t.Errorf("status: expected 'Paid', got '%s'", got.StatusName)
	}
	if got.Outstanding != 0 || !got.Settled {
		t.Errorf("expected a settled record with nothing outstanding, got %+v", got)
	}
}

func TestListLoans_StatusFilter(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")

	srv.createLoan(t, token, api.LoanFields{Name: "A", MoneyProvided: 10})
	paid := srv.createLoan(t, token, api.LoanFields{Name: "B", MoneyProvided: 20})
	srv.createLoan(t, token, api.LoanFields{Name: "C", MoneyProvided: 30})

	if _, err := srv.loans(token).MarkPaid(context.Background(), connect.NewRequest(&api.MarkPaidRequest{LoanID: paid.ID})); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}

	counts := map[string]int{"": 3, "All": 3, "Pending": 2, "Paid": 1, "Overdue": 0}
	for status, want := range counts {
		resp, err := srv.loans(token).ListLoans(context.Background(), connect.NewRequest(&api.ListLoansRequest{Status: status}))
		if err != nil {
			t.Fatalf("ListLoans(%q) failed: %v", status, err)
		}
		if len(resp.Msg.Loans) != want {
			t.Errorf("ListLoans(%q): expected %d, got %d", status, want, len(resp.Msg.Loans))
		}
	}
}

func TestSummary(t *testing.T) {
	srv := setupTestServer(t)
	token := srv.register(t, "admin")

	srv.createLoan(t, token, api.LoanFields{Name: "A", MoneyProvided: 100, MoneyReturned: 40})
	srv.createLoan(t, token, api.LoanFields{Name: "B", MoneyProvided: 60})

	resp, err := srv.loans(token).Summary(context.Background(), connect.NewRequest(&api.SummaryRequest{}))
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(resp.Msg.Summaries) == 0 {
		t.Fatal("expected summaries")
	}

	all := resp.Msg.Summaries[0]
	if all.StatusName != "All" {
		t.Fatalf("first bucket: expected 'All', got '%s'", all.StatusName)
	}
	if all.Count != 2 || all.TotalProvided != 160 || all.TotalReturned != 40 || all.Outstanding != 120 {
		t.Errorf("unexpected All bucket: %+v", all)
	}
}
