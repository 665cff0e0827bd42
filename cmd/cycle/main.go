// cycle runs the flight status notification cycle once and exits.
//
// By default every user is processed; --email limits the run to one user.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"flightwatch-service/internal/app"
	"flightwatch-service/internal/infrastructure/config"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var email string
	var all bool
	var timeout time.Duration
	var prune bool

	flagSet := pflag.NewFlagSet("cycle", pflag.ContinueOnError)
	flagSet.StringVar(&email, "email", "", "run the cycle for this user only")
	flagSet.BoolVar(&all, "all", true, "run the cycle for every user")
	flagSet.DurationVar(&timeout, "timeout", 0, "abort the run after this long (default CYCLE_TIMEOUT, 0 for no limit)")
	flagSet.BoolVar(&prune, "prune", false, "remove watermarks without a booking after a full run")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if prune {
		cfg.WatermarkPrune = true
	}
	if timeout <= 0 {
		timeout = cfg.CycleTimeout
	}

	zl := logger.NewLogger(cfg.LogLevel)
	defer zl.Sync()

	ctx, cancel := usecase.WithCycleTimeout(context.Background(), timeout)
	defer cancel()

	container, err := app.Build(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer container.Close(context.Background())

	var notified bool
	if email != "" {
		notified, err = container.Cycle.RunForUser(ctx, email)
	} else if all {
		notified, err = container.Cycle.RunCycle(ctx)
	} else {
		return errors.New("either --email or --all is required")
	}
	if err != nil {
		return err
	}

	zl.Info("Cycle finished", "email", email, "notified", notified)
	return nil
}
