package tracing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, ExporterFile, cfg.Exporter)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, DefaultServiceName, cfg.ServiceName)
}

func TestValidExporter(t *testing.T) {
	for _, name := range []string{"", "none", "file", "stdout", "otlp"} {
		require.True(t, ValidExporter(name), name)
	}
	require.False(t, ValidExporter("jaeger"))
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "test-span")
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no ids")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporterRequiresPath(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: ExporterFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file_path required")
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "jaeger"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter type")
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces", "spans.jsonl")

	provider, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    ExporterFile,
		FilePath:    tracePath,
		SampleRate:  1.0,
		ServiceName: "test-service",
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := StartTransition(context.Background(), provider.Tracer(), "to_domain", "session-1", "/")
	EndTransition(span, ResultCommitted, "/domain/home", 1, nil)

	// Shutdown flushes the batcher.
	require.NoError(t, provider.Shutdown(context.Background()))

	f, err := os.Open(tracePath)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())

	var rec SpanRecord
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
	require.Equal(t, SpanPrefixTransition+"to_domain", rec.Name)
	require.Equal(t, "INTERNAL", rec.Kind)
	require.Equal(t, "OK", rec.Status)
	require.Equal(t, "/domain/home", rec.Attributes[AttrToPath])
	require.Equal(t, "session-1", rec.Attributes[AttrSessionID])
}

func TestEndTransition_RecordsError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := NewProviderWithExporter(DefaultConfig(), exporter)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	sentinel := fmt.Errorf("invalid domain")
	_, span := StartTransition(context.Background(), provider.Tracer(), "to_domain", "s", "/map")
	EndTransition(span, ResultRejected, "/map", 0, fmt.Errorf("to_domain rejected: %w", fmt.Errorf("%w: %q", sentinel, "atlantis")))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status.Code)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	require.Equal(t, ResultRejected, attrs[AttrResult].AsString())
	require.Equal(t, "invalid domain", attrs[AttrErrorType].AsString())
	require.Len(t, spans[0].Events, 1, "error is recorded as an event")
}

func TestStartTransition_NilTracer(t *testing.T) {
	ctx := context.Background()
	got, span := StartTransition(ctx, nil, "go_back", "s", "/")
	require.Equal(t, ctx, got)
	require.NotPanics(t, func() { EndTransition(span, ResultNoop, "/", 0, nil) })
}

func TestFileExporter_AppendsAndShutsDown(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(tracePath, []byte(`{"existing":"data"}`+"\n"), 0600))

	exporter, err := NewFileExporter(tracePath)
	require.NoError(t, err)

	stub := tracetest.SpanStub{
		Name:      "nav.transition.to_map",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(5 * time.Millisecond),
		Attributes: []attribute.KeyValue{
			attribute.String(AttrAction, "to_map"),
		},
	}
	require.NoError(t, exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exporter.ExportSpans(context.Background(), nil))
	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()), "shutdown is idempotent")

	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)

	content, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	lines := 0
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		lines++
	}
	require.Equal(t, 2, lines)
}
