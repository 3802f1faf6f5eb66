package metrics_test

import (
	"context"
	"prober/pkg/domain"
	"prober/pkg/metrics"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}

	return out
}

func TestProbes_RecordsOutcomes(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	p, err := metrics.NewProbes(mp)
	require.NoError(t, err)

	ctx := context.Background()
	for _, o := range []domain.Outcome{domain.OutcomeFound, domain.OutcomeHTTPError, domain.OutcomeHTTPError} {
		p.Started(ctx)
		p.Finished(ctx, domain.Result{Outcome: o, Duration: 20 * time.Millisecond})
	}
	p.Started(ctx)

	got := collect(t, reader)

	total, ok := got["prober.probes"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byOutcome := map[string]int64{}
	for _, dp := range total.DataPoints {
		v, _ := dp.Attributes.Value("outcome")
		byOutcome[v.AsString()] = dp.Value
	}
	require.Equal(t, map[string]int64{"FOUND": 1, "HTTP_ERROR": 2}, byOutcome)

	inFlight, ok := got["prober.probes.in_flight"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, inFlight.DataPoints, 1)
	require.Equal(t, int64(1), inFlight.DataPoints[0].Value)

	hist, ok := got["prober.probe.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
		require.Equal(t, metrics.DefaultBuckets, dp.Bounds)
	}
	require.Equal(t, uint64(3), count)
}

func TestProbes_NilIsNoop(t *testing.T) {
	var p *metrics.Probes
	require.NotPanics(t, func() {
		p.Started(context.Background())
		p.Finished(context.Background(), domain.Result{Outcome: domain.OutcomeFound})
	})
}

func TestNewMeterProvider_ExportsToRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	mp, err := metrics.NewMeterProvider(reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	p, err := metrics.NewProbes(mp)
	require.NoError(t, err)
	p.Started(context.Background())
	p.Finished(context.Background(), domain.Result{Outcome: domain.OutcomeTimeout, Duration: time.Second})

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.True(t, containsPrefix(names, "prober_probes"), "exported families: %v", names)
	require.True(t, containsPrefix(names, "prober_probe_duration"), "exported families: %v", names)
}

func containsPrefix(names []string, prefix string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}

	return false
}
