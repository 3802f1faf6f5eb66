// Package prober runs existence checks over a list of candidate URLs with a
// fixed worker cap, delivering results in submission order.
//
// # Ordering and cancellation
//
// Every candidate owns a result slot (a channel with capacity one). A
// dispatcher hands candidates to at most Workers goroutines, each writing its
// result into the candidate's slot, while the consumer reads slots strictly in
// index order. A slow check at index N therefore delays delivery of N+1
// even if the latter already finished, but never the checks themselves.
//
// All checks share a run context. Stopping early (yield returning false) or
// canceling the parent context cancels it: in-flight checks abort through
// their request context and the dispatcher resolves the remaining candidates
// to OutcomeCanceled without touching the network. Slots are buffered, so no
// worker ever blocks on an abandoned consumer, and Run waits for the
// dispatcher before returning.
package prober

import (
	"context"
	"fmt"
	"prober/internal/config"
	"prober/pkg/domain"
	"prober/pkg/existence"
	"prober/pkg/logger"
	"prober/pkg/metrics"
	"prober/pkg/serrors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configure a Prober.
type Options struct {
	// Workers is the maximum number of checks in flight. Values below 1 mean 1.
	Workers int
	// Metrics, when set, receives one Started/Finished pair per check.
	Metrics *metrics.Probes
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config, m *metrics.Probes) Options {
	return Options{
		Workers: cfg.Prober.Workers,
		Metrics: m,
	}
}

type prober struct {
	options Options
	checker existence.Checker
}

// Run implements Prober.
func (p *prober) Run(ctx context.Context, candidates []string, yield func(domain.Result) bool) error {
	if len(candidates) == 0 {
		return nil
	}

	ctx = logger.WithFields(ctx, zap.String("runID", uuid.NewString()))
	logger.Debug(ctx, "starting probe run",
		zap.Int("candidates", len(candidates)),
		zap.Int("workers", p.options.Workers))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]chan domain.Result, len(candidates))
	for i := range slots {
		slots[i] = make(chan domain.Result, 1)
	}

	dispatched := make(chan struct{})
	go func() {
		defer close(dispatched)
		p.dispatch(runCtx, candidates, slots)
	}()

	delivered := 0
	for _, slot := range slots {
		res := <-slot
		delivered++
		if !yield(res) {
			break
		}
	}

	cancel()
	<-dispatched

	logger.Debug(ctx, "probe run finished", zap.Int("delivered", delivered))

	if err := ctx.Err(); err != nil {
		return serrors.Wrap(serrors.ErrCanceled, err, "probe run interrupted")
	}

	return nil
}

// dispatch fills every slot exactly once. Candidates reached after the run
// context is done are resolved without a check.
func (p *prober) dispatch(ctx context.Context, candidates []string, slots []chan domain.Result) {
	g := new(errgroup.Group)
	g.SetLimit(p.options.Workers)

	for i, URL := range candidates {
		if err := ctx.Err(); err != nil {
			slots[i] <- canceled(i, URL, err)

			continue
		}
		g.Go(func() error {
			slots[i] <- p.probe(ctx, i, URL)

			return nil
		})
	}

	_ = g.Wait()
}

// probe runs a single check. The run context is checked again here because a
// worker slot may become free only after the run was stopped.
func (p *prober) probe(ctx context.Context, index int, URL string) domain.Result {
	if err := ctx.Err(); err != nil {
		return canceled(index, URL, err)
	}

	p.options.Metrics.Started(ctx)
	res := p.checker.Check(ctx, URL)
	res.Index = index
	res.URL = URL
	p.options.Metrics.Finished(ctx, res)

	fields := []zap.Field{
		zap.String("url", URL),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", res.Duration),
	}
	if res.Err != nil {
		fields = append(fields, zap.Error(res.Err))
	}
	if res.Found() {
		logger.Info(ctx, "candidate found", fields...)
	} else {
		logger.Debug(ctx, "candidate not found", fields...)
	}

	return res
}

func canceled(index int, URL string, err error) domain.Result {
	return domain.Result{
		Index:   index,
		URL:     URL,
		Outcome: domain.OutcomeCanceled,
		Err:     serrors.Wrap(serrors.ErrCanceled, err, "check not dispatched"),
	}
}

// Search implements Prober.
func (p *prober) Search(ctx context.Context,
	candidates []string,
	strategy domain.Strategy,
	onFound func(domain.Result)) ([]domain.Result, error) {
	var stopAtFirst bool
	switch strategy {
	case domain.StrategyFindAll:
	case domain.StrategyFindFirst:
		stopAtFirst = true
	default:
		return nil, serrors.With(serrors.ErrBadRequest, "unknown strategy %q", strategy)
	}

	start := time.Now()
	var found []domain.Result
	err := p.Run(ctx, candidates, func(res domain.Result) bool {
		if !res.Found() {
			return true
		}
		found = append(found, res)
		if onFound != nil {
			onFound(res)
		}

		return !stopAtFirst
	})

	logger.Info(ctx, "search finished",
		zap.String("strategy", string(strategy)),
		zap.Int("candidates", len(candidates)),
		zap.Int("found", len(found)),
		zap.Duration("elapsed", time.Since(start)))

	if err != nil {
		return found, fmt.Errorf("could not complete search: %w", err)
	}

	return found, nil
}

// New creates a Prober dispatching checks to checker.
func New(checker existence.Checker, options Options) Prober {
	if options.Workers < 1 {
		options.Workers = 1
	}

	return &prober{
		options: options,
		checker: checker,
	}
}
