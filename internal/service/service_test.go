package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/lendbook/internal/auth"
	"github.com/mmynk/lendbook/internal/middleware"
	"github.com/mmynk/lendbook/internal/reminder"
	"github.com/mmynk/lendbook/internal/storage/sqlite"
	"github.com/mmynk/lendbook/pkg/api"
)

var testToday = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	url string
}

// setupTestServer serves every service over a temp database, behind the
// same interceptors as cmd/server.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	engine := reminder.NewEngine(store, reminder.WithClock(func() time.Time { return testToday }), reminder.WithLogger(logger))

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.PublicProcedures...),
		middleware.LoggingInterceptor(nil),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAccountServiceHandler(NewAccountService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), interceptors))
	mux.Handle(api.NewLoanServiceHandler(NewLoanService(store, logger), interceptors))
	mux.Handle(api.NewReminderServiceHandler(NewReminderService(engine), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &testServer{url: server.URL}
}

func (s *testServer) accounts(token string) *api.AccountServiceClient {
	return api.NewAccountServiceClient(http.DefaultClient, s.url, api.WithToken(token))
}

func (s *testServer) loans(token string) *api.LoanServiceClient {
	return api.NewLoanServiceClient(http.DefaultClient, s.url, api.WithToken(token))
}

func (s *testServer) reminders(token string) *api.ReminderServiceClient {
	return api.NewReminderServiceClient(http.DefaultClient, s.url, api.WithToken(token))
}

// register signs up username and returns its session token.
func (s *testServer) register(t *testing.T, username string) string {
	t.Helper()

	resp, err := s.accounts("").Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Username: username,
		FullName: "Test " + username,
		Email:    username + "@example.com",
		Password: "secret1",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected a session token")
	}
	return resp.Msg.Token
}

func (s *testServer) createLoan(t *testing.T, token string, fields api.LoanFields) api.LoanRecord {
	t.Helper()

	resp, err := s.loans(token).CreateLoan(context.Background(), connect.NewRequest(&api.CreateLoanRequest{Loan: fields}))
	if err != nil {
		t.Fatalf("CreateLoan failed: %v", err)
	}
	return resp.Msg.Loan
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected %v, got %v (%v)", want, got, err)
	}
}
