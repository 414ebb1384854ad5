package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/expenses-backend/internal/adapter/amqp"
	"github.com/heartmarshall/expenses-backend/internal/adapter/postgres"
	expenserepo "github.com/heartmarshall/expenses-backend/internal/adapter/postgres/expense"
	userrepo "github.com/heartmarshall/expenses-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/expenses-backend/internal/auth"
	"github.com/heartmarshall/expenses-backend/internal/config"
	"github.com/heartmarshall/expenses-backend/internal/domain"
	"github.com/heartmarshall/expenses-backend/internal/notification"
	"github.com/heartmarshall/expenses-backend/internal/service/expense"
	"github.com/heartmarshall/expenses-backend/internal/transport/middleware"
	"github.com/heartmarshall/expenses-backend/internal/transport/rest"
)

type expenseNotifier interface {
	ExpenseRegistered(ctx context.Context, user domain.User, e domain.Expense) error
}

// Run is the API server entry point. It loads configuration, connects to
// PostgreSQL (and the broker when configured), wires the expense service and
// serves HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("addr", cfg.Server.Addr()),
		slog.String("amqp", cfg.AMQP.String()),
		slog.String("timezone", cfg.Expenses.Timezone),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := migrateUp(ctx, pool, logger); err != nil {
			return err
		}
	}

	health := []rest.HealthComponent{{Name: "database", Pinger: pool}}

	var notifier expenseNotifier
	if cfg.AMQP.Enabled() {
		client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, logger)
		if err != nil {
			return fmt.Errorf("connect amqp: %w", err)
		}
		defer client.Close() //nolint:errcheck
		notifier = notification.NewPublisher(client, logger)
		health = append(health, rest.HealthComponent{Name: "broker", Pinger: client})
	} else {
		notifier = notification.NewLogNotifier(logger)
	}

	txm := postgres.NewTxManager(pool)
	svc := expense.NewService(
		logger,
		expenserepo.New(pool),
		userrepo.New(pool),
		txm,
		notifier,
		expense.SystemClock{Location: cfg.Expenses.Location},
	)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled() {
		limiter = middleware.NewRateLimiter(cfg.RateLimit)
	}
	defer limiter.Stop()

	handler := NewRouter(RouterDeps{
		Logger:      logger,
		Expenses:    rest.NewExpenseHandler(svc, logger),
		Health:      rest.NewHealthHandler(BuildVersion(), health...),
		Tokens:      auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		CORS:        cfg.CORS,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    1 << 16,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is done, then drains in-flight requests within
// shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped gracefully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck
	return m.Up(ctx)
}
