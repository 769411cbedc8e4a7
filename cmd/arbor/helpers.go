package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/logging"
)

// resolveConfig loads the config honoring the --config and --log-level
// flags, and builds the application logger from it.
func resolveConfig(cmd *cobra.Command) (cli.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = "arbor.yaml"
	}

	cfg, err := cli.LoadConfig(path, explicit)
	if err != nil {
		return cfg, nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, logging.New(logging.ParseLevel(cfg.LogLevel)), nil
}
