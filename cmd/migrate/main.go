// Command migrate applies or inspects the embedded database migrations.
//
// Usage:
//
//	migrate up       apply all pending migrations (default)
//	migrate down     roll back the most recent migration
//	migrate status   list migrations and whether they are applied
//
// Exit codes: 0 = success, 1 = error, 2 = bad usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/heartmarshall/expenses-backend/internal/adapter/postgres"
	"github.com/heartmarshall/expenses-backend/internal/app"
	"github.com/heartmarshall/expenses-backend/internal/config"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "overall timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [flags] up|down|status\n\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\n%s", config.Usage())
	}
	flag.Parse()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}
	if cmd != "up" && cmd != "down" && cmd != "status" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cmd, cfg, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", cmd), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, cfg *config.Config, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck

	switch cmd {
	case "down":
		return m.Down(ctx)
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tPATH")
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
		}
		return tw.Flush()
	default:
		return m.Up(ctx)
	}
}
