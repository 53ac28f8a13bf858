package snowotel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/snowid/pkg/snowid"
	"github.com/omeyang/snowid/pkg/snowotel"
)

// newTestMeter 返回可手动采集的 MeterProvider。
func newTestMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
	return provider, reader
}

// collect 采集指标并按名称索引。
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	metrics := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			metrics[m.Name] = m
		}
	}
	return metrics
}

func TestWrap_NilGenerator(t *testing.T) {
	t.Parallel()

	_, err := snowotel.Wrap(nil)
	assert.ErrorIs(t, err, snowotel.ErrNilGenerator)
}

func TestGenerate_RecordsMetrics(t *testing.T) {
	t.Parallel()

	provider, reader := newTestMeter(t)

	gen, err := snowid.New(42)
	require.NoError(t, err)

	wrapped, err := snowotel.Wrap(gen, snowotel.WithMeterProvider(provider))
	require.NoError(t, err)

	const n = 5
	var prev uint64
	for i := 0; i < n; i++ {
		id := wrapped.Generate(context.Background())
		assert.Greater(t, id, prev)
		prev = id
	}

	metrics := collect(t, reader)

	counter, ok := metrics["snowid.generated.total"]
	require.True(t, ok, "counter not collected")
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(n), sum.DataPoints[0].Value)

	// 数据点带节点属性
	node, ok := sum.DataPoints[0].Attributes.Value(attribute.Key("node"))
	require.True(t, ok)
	assert.Equal(t, int64(42), node.AsInt64())

	histogram, ok := metrics["snowid.generate.duration"]
	require.True(t, ok, "histogram not collected")
	hist, ok := histogram.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(n), hist.DataPoints[0].Count)
}

func TestGenerateBase62_RecordsMetrics(t *testing.T) {
	t.Parallel()

	provider, reader := newTestMeter(t)

	gen, err := snowid.New(1)
	require.NoError(t, err)

	wrapped, err := snowotel.Wrap(gen, snowotel.WithMeterProvider(provider))
	require.NoError(t, err)

	s := wrapped.GenerateBase62(context.Background())
	assert.NotEmpty(t, s)

	metrics := collect(t, reader)
	counter, ok := metrics["snowid.generated.total"]
	require.True(t, ok)
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
}

func TestWithInstrumentationName(t *testing.T) {
	t.Parallel()

	provider, reader := newTestMeter(t)

	gen, err := snowid.New(1)
	require.NoError(t, err)

	wrapped, err := snowotel.Wrap(gen,
		snowotel.WithMeterProvider(provider),
		snowotel.WithInstrumentationName("custom/scope"),
	)
	require.NoError(t, err)

	wrapped.Generate(context.Background())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, "custom/scope", rm.ScopeMetrics[0].Scope.Name)
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	provider, _ := newTestMeter(t)

	gen, err := snowid.New(1)
	require.NoError(t, err)
	wrapped, err := snowotel.Wrap(gen, snowotel.WithMeterProvider(provider))
	require.NoError(t, err)

	assert.Same(t, gen, wrapped.Unwrap())
}
