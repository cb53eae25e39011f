// Package telemetry wires an OpenTelemetry tracer for the orchestrator's
// request entry points; the legacy bridge calls beneath them run inside
// those spans and get no span of their own. When
// tracing is disabled in configuration, Shutdown is a no-op and every
// span is recorded against the global no-op tracer.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cquiroz/lucuma-itc"

// Provider wraps the SDK trace provider so main can shut it down cleanly
// on exit. A zero-value Provider (Enabled == false) leaves the global
// otel tracer provider untouched — callers get the default no-op tracer.
type Provider struct {
	tp      *sdktrace.TracerProvider
	Enabled bool
}

// Config mirrors the subset of config.TracingConfig telemetry needs,
// kept decoupled from the config package to avoid an import cycle.
type Config struct {
	Enabled     bool
	ServiceName string
	SampleRatio float64
}

// Setup installs a sampling TracerProvider as the global otel provider
// when cfg.Enabled, otherwise leaves the global no-op provider in place.
func Setup(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{Enabled: false}, nil
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 {
		ratio = 1
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)
	return &Provider{tp: tp, Enabled: true}, nil
}

// Shutdown flushes and stops the tracer provider, if one was installed.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutdown: %w", err)
	}
	return nil
}

// Tracer returns the package-scoped tracer, backed by whatever provider
// is currently global (no-op if tracing was never enabled).
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan is a thin convenience wrapper so call sites read like the
// orchestrator's other small helpers rather than repeating the tracer
// name everywhere.
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name)
}
