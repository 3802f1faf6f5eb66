// Package metrics holds the OpenTelemetry instruments recorded by the prober
// and the wiring that exposes them to Prometheus.
package metrics

import (
	"context"
	"fmt"
	"prober/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "prober"

// Probes records per-check metrics. A nil *Probes is valid and records nothing.
type Probes struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

// NewProbes creates the probe instruments on a meter from mp.
func NewProbes(mp metric.MeterProvider) (*Probes, error) {
	meter := mp.Meter(meterName)

	total, err := meter.Int64Counter("prober.probes",
		metric.WithDescription("Number of finished existence checks by outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create probes counter: %w", err)
	}
	duration, err := meter.Float64Histogram("prober.probe.duration",
		metric.WithDescription("Duration of existence checks."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create probe duration histogram: %w", err)
	}
	inFlight, err := meter.Int64UpDownCounter("prober.probes.in_flight",
		metric.WithDescription("Number of existence checks currently running."))
	if err != nil {
		return nil, fmt.Errorf("could not create in-flight counter: %w", err)
	}

	return &Probes{total: total, duration: duration, inFlight: inFlight}, nil
}

// Started marks a check as in flight.
func (p *Probes) Started(ctx context.Context) {
	if p == nil {
		return
	}
	p.inFlight.Add(ctx, 1)
}

// Finished records the outcome and duration of a check started with Started.
func (p *Probes) Finished(ctx context.Context, res domain.Result) {
	if p == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", string(res.Outcome)))
	p.inFlight.Add(ctx, -1)
	p.total.Add(ctx, 1, attrs)
	p.duration.Record(ctx, res.Duration.Seconds(), attrs)
}

// NewMeterProvider returns an SDK MeterProvider whose instruments are exported
// through reg, so they are served by the Prometheus handler of reg's gatherer.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}
