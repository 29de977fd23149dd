// Command lendctl manages a local lendbook database from the terminal.
//
// Usage:
//
//	lendctl [flags] register <username> <full name> <email>
//	lendctl [flags] login <username>
//	lendctl [flags] add -name NAME -amount N [-due YYYY-MM-DD] [-phone P] [-email E] [-notes N]
//	lendctl [flags] list [-status NAME]
//	lendctl [flags] pay <loan-id> <amount> [notes]
//	lendctl [flags] paid <loan-id>
//	lendctl [flags] payments <loan-id>
//	lendctl [flags] summary
//	lendctl [flags] reminders
//
// login prints a session token; every other command except register reads it
// from LENDBOOK_TOKEN.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mmynk/lendbook/internal/config"
	"github.com/mmynk/lendbook/internal/storage/sqlite"
	"github.com/mmynk/lendbook/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lendctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, rest, err := config.Load(args, os.Getenv)
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	a := newApp(store, cfg, logger, os.Stdin, os.Stdout)
	a.token = os.Getenv("LENDBOOK_TOKEN")
	return a.dispatch(ctx, rest)
}
