package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/mmynk/lendbook/internal/auth"
	"github.com/mmynk/lendbook/internal/calculator"
	"github.com/mmynk/lendbook/internal/config"
	"github.com/mmynk/lendbook/internal/models"
	"github.com/mmynk/lendbook/internal/reminder"
	"github.com/mmynk/lendbook/internal/storage"
)

var errUsage = errors.New("usage: lendctl [flags] register|login|add|list|pay|paid|payments|summary|reminders")

var validate = validator.New()

type app struct {
	store  storage.Store
	auth   *auth.PasswordAuthenticator
	jwt    *auth.JWTManager
	engine *reminder.Engine
	logger *slog.Logger

	in    io.Reader
	out   io.Writer
	token string
}

func newApp(store storage.Store, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) *app {
	if logger == nil {
		logger = slog.Default()
	}
	return &app{
		store:  store,
		auth:   auth.NewPasswordAuthenticator(store),
		jwt:    auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		engine: reminder.NewEngine(store, reminder.WithLogger(logger)),
		logger: logger,
		in:     in,
		out:    out,
	}
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "add", "list", "pay", "paid", "payments", "summary", "reminders":
	default:
		return errUsage
	}

	accountID, err := a.session()
	if err != nil {
		return err
	}

	switch cmd {
	case "add":
		return a.add(ctx, accountID, args)
	case "list":
		return a.list(ctx, accountID, args)
	case "pay":
		return a.pay(ctx, accountID, args)
	case "paid":
		return a.markPaid(ctx, accountID, args)
	case "payments":
		return a.payments(ctx, accountID, args)
	case "summary":
		return a.summary(ctx, accountID)
	case "reminders":
		return a.reminders(ctx, accountID)
	default:
		return errUsage
	}
}

// session resolves the account from the session token.
func (a *app) session() (string, error) {
	if a.token == "" {
		return "", errors.New("not logged in: run `lendctl login <username>` and export LENDBOOK_TOKEN")
	}
	claims, err := a.jwt.Validate(a.token)
	if err != nil {
		return "", err
	}
	return claims.AccountID, nil
}

// readPassword prompts without echo on a terminal and reads a plain line otherwise.
func (a *app) readPassword(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)

	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		return string(b), err
	}

	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: lendctl register <username> <full name> <email>")
	}
	username, fullName, email := args[0], args[1], args[2]

	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(fullName) == "" {
		return errors.New("username and full name are required")
	}

	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}

	account, err := a.auth.Register(ctx, username, fullName, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %s (%s)\n", account.Username, account.ID)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: lendctl login <username>")
	}

	password, err := a.readPassword("Password: ")
	if err != nil {
		return err
	}

	account, err := a.auth.Authenticate(ctx, args[0], password)
	if err != nil {
		return err
	}
	if account == nil {
		return auth.ErrInvalidCredentials
	}

	token, err := a.jwt.Generate(account)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s\nexport LENDBOOK_TOKEN=%s\n", account.FullName, token)
	return nil
}

func (a *app) add(ctx context.Context, accountID string, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(a.out)

	var in models.LoanInput
	fs.StringVar(&in.Name, "name", "", "counterparty name")
	fs.Func("amount", "amount lent", func(v string) error {
		amount, err := parseAmount(v)
		in.MoneyProvided = amount
		return err
	})
	fs.StringVar(&in.DueDate, "due", "", "due date (YYYY-MM-DD)")
	fs.StringVar(&in.Phone, "phone", "", "phone number")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Notes, "notes", "", "notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if in.Name == "" || in.MoneyProvided <= 0 {
		return errors.New("add requires -name and a positive -amount")
	}
	if in.DueDate != "" {
		if _, err := time.Parse(models.DueDateLayout, in.DueDate); err != nil {
			return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", in.DueDate)
		}
	}

	id, err := a.store.CreateLoanRecord(ctx, accountID, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, id)
	return nil
}

func (a *app) list(ctx context.Context, accountID string, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	status := fs.String("status", "", "status name, or All")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loans, err := a.store.ListLoanRecordsByStatus(ctx, accountID, *status)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROVIDED\tRETURNED\tOUTSTANDING\tDUE\tSTATUS")
	for _, l := range loans {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, l.Name,
			reminder.FormatAmount(l.MoneyProvided),
			reminder.FormatAmount(l.MoneyReturned),
			reminder.FormatAmount(calculator.LoanOutstanding(l)),
			l.DueDate, l.StatusName,
		)
	}
	return w.Flush()
}

// ownedLoan hides records of other accounts.
func (a *app) ownedLoan(ctx context.Context, accountID, loanID string) (*models.LoanRecord, error) {
	loan, err := a.store.GetLoanRecord(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil || loan.AccountID != accountID {
		return nil, fmt.Errorf("loan record %s: %w", loanID, storage.ErrNotFound)
	}
	return loan, nil
}

// parseAmount accepts a positive, finite number.
func parseAmount(v string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("invalid amount %q, want a positive number", v)
	}
	return amount, nil
}

func (a *app) pay(ctx context.Context, accountID string, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: lendctl pay <loan-id> <amount> [notes]")
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	if _, err := a.ownedLoan(ctx, accountID, args[0]); err != nil {
		return err
	}

	payment, err := a.store.RecordPayment(ctx, args[0], amount, strings.Join(args[2:], " "))
	if err != nil {
		return err
	}

	loan, err := a.ownedLoan(ctx, accountID, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recorded %s, outstanding %s\n",
		reminder.FormatAmount(payment.Amount), reminder.FormatAmount(calculator.LoanOutstanding(*loan)))
	return nil
}

func (a *app) markPaid(ctx context.Context, accountID string, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: lendctl paid <loan-id>")
	}
	if _, err := a.ownedLoan(ctx, accountID, args[0]); err != nil {
		return err
	}
	if err := a.store.MarkPaid(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Marked as paid")
	return nil
}

func (a *app) payments(ctx context.Context, accountID string, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: lendctl payments <loan-id>")
	}
	if _, err := a.ownedLoan(ctx, accountID, args[0]); err != nil {
		return err
	}

	payments, err := a.store.ListPayments(ctx, args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tAMOUNT\tNOTES")
	for _, p := range payments {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.PaymentDate, reminder.FormatAmount(p.Amount), p.Notes)
	}
	return w.Flush()
}

func (a *app) summary(ctx context.Context, accountID string) error {
	statuses, err := a.store.ListStatuses(ctx)
	if err != nil {
		return err
	}
	loans, err := a.store.ListLoanRecords(ctx, accountID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tCOUNT\tPROVIDED\tRETURNED\tOUTSTANDING")
	for _, s := range calculator.Summarize(statuses, loans) {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", s.StatusName, s.Count,
			reminder.FormatAmount(s.TotalProvided),
			reminder.FormatAmount(s.TotalReturned),
			reminder.FormatAmount(s.Outstanding),
		)
	}
	return w.Flush()
}

func (a *app) reminders(ctx context.Context, accountID string) error {
	messages := a.engine.ComputeReminders(ctx, accountID)
	if len(messages) == 0 {
		fmt.Fprintln(a.out, "No reminders")
		return nil
	}
	for _, msg := range messages {
		fmt.Fprintln(a.out, msg)
	}
	return nil
}
