// Package tracing wires OpenTelemetry for navigation transitions. Each
// dispatched action becomes one span carrying the action, the canonical
// paths before and after, and the outcome.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names accepted in Config.Exporter.
const (
	ExporterNone   = "none"
	ExporterFile   = "file"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// DefaultServiceName identifies spherenav in exported traces.
const DefaultServiceName = "spherenav"

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active.
	// When false, a no-op tracer is returned.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the export backend: none, file, stdout or otlp.
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the JSONL output for the file exporter.
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector address for the otlp exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept. 1.0 keeps all.
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`

	// ServiceName identifies this process in traces.
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// DefaultConfig returns tracing disabled with the file exporter preselected.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     ExporterFile,
		FilePath:     "",
		OTLPEndpoint: "localhost:4317",
		SampleRate:   1.0,
		ServiceName:  DefaultServiceName,
	}
}

// ValidExporter reports whether name is a supported exporter.
func ValidExporter(name string) bool {
	switch name {
	case "", ExporterNone, ExporterFile, ExporterStdout, ExporterOTLP:
		return true
	}
	return false
}

// Provider owns the tracer provider and hands out the navigation tracer.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider builds a provider from cfg. A disabled config yields a no-op
// tracer.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{
			tracer:  noop.NewTracerProvider().Tracer("noop"),
			enabled: false,
		}, nil
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.Exporter {
	case ExporterFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file_path required for file exporter")
		}
		exporter, err = NewFileExporter(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("create file exporter: %w", err)
		}
	case ExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	case ExporterOTLP:
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exporter, err = otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
	case ExporterNone, "":
		// Spans are still created so trace ids correlate log lines.
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	return newProvider(cfg, exporter), nil
}

// NewProviderWithExporter builds an enabled provider that sends spans to
// exporter synchronously. Used by tests and the replay command.
func NewProviderWithExporter(cfg Config, exporter sdktrace.SpanExporter) *Provider {
	cfg.Enabled = true
	return newProvider(cfg, exporter, sdktrace.WithSyncer(exporter))
}

func newProvider(cfg Config, exporter sdktrace.SpanExporter, extra ...sdktrace.TracerProviderOption) *Provider {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	// Schemaless avoids schema version conflicts with resource.Default().
	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil && len(extra) == 0 {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	opts = append(opts, extra...)

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
		enabled:  true,
	}
}

// Tracer returns the tracer. It is safe to use when tracing is disabled.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled returns whether tracing is enabled.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
