package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"overtime-tracker/internal/api"
	"overtime-tracker/internal/cli"
	"overtime-tracker/internal/config"
	"overtime-tracker/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Defaults, then config.ini, .env and OT_* variables; flags are applied by the root command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommandWithFactory(cfg, openAPI)
	defer root.Close()

	return root.ExecuteContext(ctx)
}

// openAPI opens the configured store and wires the API over it
func openAPI(cfg *config.Config) (api.API, func(), error) {
	logger := logging.New(logging.DefaultConfig("ot", cfg.Application.Verbose))

	factory := config.NewStoreFactory(config.GetEnvironment(), cfg)
	store, cleanup, err := factory.CreateStore(logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("store opened", "driver", cfg.Database.Driver, "path", cfg.GetDatabasePath())
	return api.New(store, time.Now, logger), cleanup, nil
}
