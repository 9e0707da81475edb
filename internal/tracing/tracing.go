// Package tracing sets up OpenTelemetry tracing for the benchmark. Spans are
// exported over OTLP/HTTP when an endpoint is configured; otherwise the
// global no-op provider stays in place.
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/agbru/recipsum/internal/logging"
)

// InstrumentationName names the tracer used by the harness.
const InstrumentationName = "github.com/agbru/recipsum/orchestration"

// Config describes where and how spans are exported.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// Endpoint is host:port of an OTLP/HTTP collector, e.g. "127.0.0.1:4318".
	// Empty disables export.
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs a global tracer provider according to cfg and returns its
// shutdown function.
func Setup(ctx context.Context, cfg Config, logger logging.Logger) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		return noopShutdown, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := NewProvider(cfg, sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Info("tracing enabled",
		logging.String("endpoint", cfg.Endpoint),
		logging.Float64("sample_ratio", cfg.SampleRatio))
	return tp.Shutdown, nil
}

// NewProvider builds a tracer provider tagged with the service identity in
// cfg. Extra options, such as an exporter or span processor, are appended.
func NewProvider(cfg Config, extra ...sdktrace.TracerProviderOption) *sdktrace.TracerProvider {
	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)
	opts := append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}, extra...)
	return sdktrace.NewTracerProvider(opts...)
}

// Shutdown calls shutdown with a bounded timeout and logs the outcome.
func Shutdown(shutdown ShutdownFunc, logger logging.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("tracing shutdown failed", err)
		return err
	}
	return nil
}
