package prober

import (
	"context"
	"prober/pkg/domain"
)

// Prober checks candidate URLs for existence with bounded parallelism.
type Prober interface {
	// Run checks every candidate and passes each result to yield in submission
	// order. Returning false from yield stops the run: checks still in flight
	// are canceled and pending candidates are never sent. Run returns once all
	// workers have exited. Check failures are reported through the results;
	// the only error is the cancellation of ctx.
	Run(ctx context.Context, candidates []string, yield func(domain.Result) bool) error
	// Search runs the candidates with the given strategy, calling onFound for
	// every match as soon as it is observed, and returns the matches in
	// submission order.
	Search(ctx context.Context,
		candidates []string,
		strategy domain.Strategy,
		onFound func(domain.Result)) ([]domain.Result, error)
}
