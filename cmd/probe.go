package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"prober/internal/api"
	"prober/internal/config"
	"prober/internal/prober"
	"prober/pkg/candidate"
	"prober/pkg/domain"
	"prober/pkg/existence/headcheck"
	"prober/pkg/logger"
	"prober/pkg/metrics"
	"prober/pkg/serrors"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("project", "", "Project identifier (overrides config)")
	cmd.Flags().String("screen", "", "Screen identifier (overrides config)")
}

func applyTargetFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("project") {
		v, err := flags.GetString("project")
		if err != nil {
			return err
		}
		cfg.Target.ProjectID = v
	}
	if flags.Changed("screen") {
		v, err := flags.GetString("screen")
		if err != nil {
			return err
		}
		cfg.Target.ScreenID = v
	}

	return nil
}

func applyProbeFlags(cmd *cobra.Command, cfg *config.Config) error {
	if err := applyTargetFlags(cmd, cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		v, err := flags.GetString("strategy")
		if err != nil {
			return err
		}
		cfg.Prober.Strategy = v
	}
	if flags.Changed("workers") {
		v, err := flags.GetInt("workers")
		if err != nil {
			return err
		}
		cfg.Prober.Workers = v
	}
	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Prober.Timeout = v
	}

	return cfg.Validate()
}

// setupServer starts the diagnostics server in the background and returns a
// function that shuts it down.
func setupServer(ctx context.Context, cfg *config.Config, gatherer prometheus.Gatherer) func(ctx context.Context) {
	server := api.NewServer(gatherer, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting diagnostics server...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start diagnostics server", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping diagnostics server...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop diagnostics server", zap.Error(err))
		}
	}
}

// newRegistry returns a registry carrying the runtime collectors and the
// probe instruments.
func newRegistry() (*prometheus.Registry, *metrics.Probes, func(context.Context), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mp, err := metrics.NewMeterProvider(reg)
	if err != nil {
		return nil, nil, nil, err
	}
	probes, err := metrics.NewProbes(mp)
	if err != nil {
		_ = mp.Shutdown(context.Background())

		return nil, nil, nil, err
	}

	return reg, probes, func(ctx context.Context) {
		if err := mp.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}, nil
}

// search checks every candidate built from cfg and reports matches to out.
func search(ctx context.Context, cfg *config.Config, probes *metrics.Probes, out io.Writer) error {
	candidates, err := candidate.Build(cfg.Targets(), cfg.Templates())
	if err != nil {
		return fmt.Errorf("could not build candidates: %w", err)
	}

	fmt.Fprintf(out, "Checking %d URLs...\n", len(candidates)) //nolint: forbidigo

	checker := headcheck.New(
		headcheck.NewHTTPClient(cfg.Prober.Workers),
		cfg.Prober.Timeout,
		headcheck.WithUserAgent(cfg.Prober.UserAgent),
	)
	p := prober.New(checker, prober.NewOptions(cfg, probes))

	strategy := domain.Strategy(cfg.Prober.Strategy)
	found, err := p.Search(ctx, candidates, strategy, func(res domain.Result) {
		fmt.Fprintf(out, "FOUND: %s\n", res.URL) //nolint: forbidigo
	})
	if err != nil {
		return err
	}

	if strategy == domain.StrategyFindAll || len(found) == 0 {
		fmt.Fprintln(out, "Done checking.") //nolint: forbidigo
	}

	return nil
}

func probeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Checks candidate URLs for the exported artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyProbeFlags(cmd, cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg, probes, stopMetrics, err := newRegistry()
			if err != nil {
				logger.Fatal(ctx, "could not create metrics", zap.Error(err))
			}

			if cfg.HTTP.Addr != "" {
				stopServer := setupServer(ctx, cfg, reg)
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
					defer cancel()

					stopServer(shutdownCtx)
				}()
			}
			defer stopMetrics(context.Background())

			start := time.Now()
			err = search(ctx, cfg, probes, cmd.OutOrStdout())
			if errors.Is(err, serrors.ErrCanceled) {
				logger.Warn(ctx, "probe interrupted", zap.Duration("elapsed", time.Since(start)))
			}

			return err
		},
	}

	addTargetFlags(cmd)
	cmd.Flags().String("strategy", "", "Search strategy: find-all or find-first (overrides config)")
	cmd.Flags().Int("workers", 0, "Maximum concurrent checks (overrides config)")
	cmd.Flags().Duration("timeout", 0, "Per-check timeout (overrides config)")

	return cmd
}
