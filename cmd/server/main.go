package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/lendbook/internal/auth"
	"github.com/mmynk/lendbook/internal/config"
	"github.com/mmynk/lendbook/internal/metrics"
	"github.com/mmynk/lendbook/internal/middleware"
	"github.com/mmynk/lendbook/internal/notify"
	"github.com/mmynk/lendbook/internal/reminder"
	"github.com/mmynk/lendbook/internal/service"
	"github.com/mmynk/lendbook/internal/storage"
	"github.com/mmynk/lendbook/internal/storage/sqlite"
	"github.com/mmynk/lendbook/pkg/api"
	"github.com/mmynk/lendbook/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.LogLevel)

	if err := cfg.CheckExposure(); err != nil {
		return err
	}
	if cfg.UsesDefaultSecret() {
		logger.Warn("Signing session tokens with the default JWT secret; set LENDBOOK_JWT_SECRET or -jwt-secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		if errors.Is(err, storage.ErrStoreUnavailable) {
			logger.Error("Storage unavailable", "database", cfg.DBPath)
		}
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	engine := reminder.NewEngine(store, reminder.WithLogger(logger), reminder.WithMetrics(m))

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.PublicProcedures...),
		middleware.LoggingInterceptor(m),
	)

	mux := http.NewServeMux()

	// Register Connect services
	accountPath, accountHandler := api.NewAccountServiceHandler(
		service.NewAccountService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger), interceptors)
	mux.Handle(accountPath, accountHandler)

	loanPath, loanHandler := api.NewLoanServiceHandler(service.NewLoanService(store, logger), interceptors)
	mux.Handle(loanPath, loanHandler)

	reminderPath, reminderHandler := api.NewReminderServiceHandler(service.NewReminderService(engine), interceptors)
	mux.Handle(reminderPath, reminderHandler)

	mux.Handle("/metrics", m.Handler())

	dispatcher, closeDispatcher := newDispatcher(ctx, cfg, logger)
	defer closeDispatcher()
	scheduler := notify.NewScheduler(store, engine, dispatcher, cfg.ReminderInterval, logger, m)
	go scheduler.Run(ctx)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", cfg.ListenAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newDispatcher writes reminders to Redis when configured, otherwise to the log.
// The returned func releases the Redis client, if any.
func newDispatcher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (notify.Dispatcher, func()) {
	if cfg.RedisAddr == "" {
		return notify.NewLogDispatcher(logger), func() {}
	}

	client, err := notify.NewRedisClient(ctx, cfg.RedisAddr, "", 0)
	if err != nil {
		logger.Warn("Redis unavailable, logging reminders instead", "addr", cfg.RedisAddr, "error", err)
		return notify.NewLogDispatcher(logger), func() {}
	}

	logger.Info("Publishing reminders to Redis", "addr", cfg.RedisAddr, "stream", cfg.RedisStream)
	return notify.NewRedisDispatcher(client, cfg.RedisStream), func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close Redis client", "error", err)
		}
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
