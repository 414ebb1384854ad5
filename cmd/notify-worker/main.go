// Command notify-worker consumes expense-registered messages from the broker
// and delivers the owner notification mail.
//
// Requires AMQP_URL in addition to the shared configuration.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/expenses-backend/internal/adapter/amqp"
	"github.com/heartmarshall/expenses-backend/internal/app"
	"github.com/heartmarshall/expenses-backend/internal/config"
	"github.com/heartmarshall/expenses-backend/internal/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if !cfg.AMQP.Enabled() {
		logger.Error("AMQP_URL is required for the notify worker")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, logger)
	if err != nil {
		logger.Error("connect amqp", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer client.Close() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting notify worker",
		slog.String("version", app.BuildVersion()),
		slog.String("amqp", cfg.AMQP.String()),
	)

	worker := notification.NewWorker(client, notification.NewLogMailer(logger), logger)
	if err := worker.Run(ctx); err != nil {
		logger.Error("notify worker failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
