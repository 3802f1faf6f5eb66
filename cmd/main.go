// Package main provides the CLI entrypoint for the artifact prober.
// It wires subcommands (probe, candidates), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"os"
	"prober/internal/config"
	"prober/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newRootCommand builds the command tree. cfg is filled in by the persistent
// pre-run hook before any subcommand runs.
func newRootCommand(cfg *config.Config) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "prober",
		Short:         "Probes candidate storage URLs for an exported artifact",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config: %w", err)
			}
			*cfg = *loaded

			logger.Setup(cfg.Environment)

			return nil
		},
	}

	// an empty or missing file means environment variables and defaults only.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config File Path")

	rootCmd.AddCommand(
		probeCommand(cfg),
		candidatesCommand(cfg),
	)

	return rootCmd
}

// main executes the CLI and exits with a non-zero status on error.
func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	err := newRootCommand(&config.Config{}).Execute()
	logger.Sync(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err) //nolint: forbidigo
		os.Exit(1)                             //nolint: gocritic
	}
}
