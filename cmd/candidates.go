package main

import (
	"fmt"
	"prober/internal/config"
	"prober/pkg/candidate"

	"github.com/spf13/cobra"
)

func candidatesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Prints the candidate URLs without checking them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyTargetFlags(cmd, cfg); err != nil {
				return err
			}

			candidates, err := candidate.Build(cfg.Targets(), cfg.Templates())
			if err != nil {
				return fmt.Errorf("could not build candidates: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, u := range candidates {
				fmt.Fprintln(out, u) //nolint: forbidigo
			}

			return nil
		},
	}

	addTargetFlags(cmd)

	return cmd
}
