package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-workflow/internal/app"
	"github.com/spec-kit/ticket-workflow/internal/cli"
	"github.com/spec-kit/ticket-workflow/internal/config"
	"github.com/spec-kit/ticket-workflow/internal/observability"
)

func main() {
	rosterPath := pflag.String("roster", "", "YAML roster file (overrides ROSTER_FILE)")
	logLevel := pflag.String("log-level", "warn", "log level written to LOG_OUTPUT")
	pflag.Parse()

	if err := run(*rosterPath, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(rosterPath, logLevel string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if rosterPath != "" {
		if err := cfg.Roster.ApplyFile(rosterPath); err != nil {
			return err
		}
	}
	cfg.Logger.Level = logLevel

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workflow, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer workflow.Close()

	err = cli.NewDispatcher(workflow.Tickets, os.Stdout, logger, workflow.Metrics).Run(ctx, os.Stdin)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	logger.Debug("session finished", zap.Any("commands", workflow.Metrics.Snapshot().Commands))
	return err
}
