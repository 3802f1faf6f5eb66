// Package existence defines the contract for lightweight existence checks:
// a single request that tells whether a URL currently serves a resource,
// without downloading it.
package existence

import (
	"context"
	"prober/pkg/domain"
)

// Checker tests a single URL for existence. Implementations never return an
// error: every failure is reported through the returned Result's Outcome and
// Err fields. Index is left for the caller to fill in.
//
//go:generate mockgen -package mockexistence -source=interface.go -destination=mock/mockexistence.go *
type Checker interface {
	Check(ctx context.Context, URL string) domain.Result
}

// CheckerFunc adapts an ordinary function to the Checker interface.
type CheckerFunc func(ctx context.Context, URL string) domain.Result

// Check calls f(ctx, URL).
func (f CheckerFunc) Check(ctx context.Context, URL string) domain.Result { return f(ctx, URL) }
