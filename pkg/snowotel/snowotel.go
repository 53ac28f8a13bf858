package snowotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/snowid/pkg/snowid"
)

const (
	defaultInstrumentationName = "github.com/omeyang/snowid/snowotel"

	metricGeneratedTotal   = "snowid.generated.total"
	metricGenerateDuration = "snowid.generate.duration"
)

// ErrNilGenerator 传入的生成器为 nil。
var ErrNilGenerator = errors.New("snowotel: nil generator")

type config struct {
	instrumentationName string
	meterProvider       metric.MeterProvider
}

// Option 定义埋点包装器的配置选项。
type Option func(*config)

// WithInstrumentationName 设置 OTel instrumentation 名称。
func WithInstrumentationName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithMeterProvider 设置 MeterProvider。
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// Generator 带指标埋点的生成器包装。
type Generator struct {
	gen       *snowid.Generator
	generated metric.Int64Counter
	duration  metric.Float64Histogram
	attrs     metric.MeasurementOption
}

// Wrap 为已有生成器创建埋点包装。
func Wrap(gen *snowid.Generator, opts ...Option) (*Generator, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}

	cfg := &config{
		instrumentationName: defaultInstrumentationName,
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	generated, err := meter.Int64Counter(
		metricGeneratedTotal,
		metric.WithDescription("total generated ids"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("snowotel: create counter failed: %w", err)
	}

	duration, err := meter.Float64Histogram(
		metricGenerateDuration,
		metric.WithDescription("generate call duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("snowotel: create histogram failed: %w", err)
	}

	return &Generator{
		gen:       gen,
		generated: generated,
		duration:  duration,
		attrs: metric.WithAttributeSet(attribute.NewSet(
			attribute.Int("node", int(gen.NodeID())),
		)),
	}, nil
}

// Generate 生成下一个 ID 并记录指标。
// ctx 仅用于指标上报，不影响生成本身（生成不可取消）。
func (g *Generator) Generate(ctx context.Context) uint64 {
	start := time.Now()
	id := g.gen.Generate()
	g.generated.Add(ctx, 1, g.attrs)
	g.duration.Record(ctx, time.Since(start).Seconds(), g.attrs)
	return id
}

// GenerateBase62 生成下一个 ID 的 base62 编码并记录指标。
func (g *Generator) GenerateBase62(ctx context.Context) string {
	start := time.Now()
	s := g.gen.GenerateBase62()
	g.generated.Add(ctx, 1, g.attrs)
	g.duration.Record(ctx, time.Since(start).Seconds(), g.attrs)
	return s
}

// Unwrap 返回底层生成器。
func (g *Generator) Unwrap() *snowid.Generator {
	return g.gen
}
