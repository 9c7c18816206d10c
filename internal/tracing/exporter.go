package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// FileExporter appends spans to a JSONL file, one span per line.
type FileExporter struct {
	file *os.File
	mu   sync.Mutex
}

// NewFileExporter opens path for appending, creating it and its parent
// directories as needed.
func NewFileExporter(path string) (*FileExporter, error) {
	cleanPath := filepath.Clean(path)

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}

	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 -- path is cleaned above
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileExporter{file: file}, nil
}

// ExportSpans writes spans as JSON lines.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		return fmt.Errorf("exporter is shut down")
	}

	encoder := json.NewEncoder(e.file)
	for _, span := range spans {
		if err := encoder.Encode(NewSpanRecord(span)); err != nil {
			return fmt.Errorf("encode span: %w", err)
		}
	}
	return nil
}

// Shutdown closes the file.
func (e *FileExporter) Shutdown(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file != nil {
		err := e.file.Close()
		e.file = nil
		return err
	}
	return nil
}

// SpanRecord is the JSON shape of an exported span, flat enough for jq.
type SpanRecord struct {
	TraceID      string         `json:"trace_id"`
	SpanID       string         `json:"span_id"`
	ParentSpanID string         `json:"parent_span_id,omitempty"`
	Name         string         `json:"name"`
	Kind         string         `json:"kind"`
	StartTime    string         `json:"start_time"`
	EndTime      string         `json:"end_time"`
	DurationMs   float64        `json:"duration_ms"`
	Status       string         `json:"status"`
	StatusMsg    string         `json:"status_message,omitempty"`
	Attributes   map[string]any `json:"attributes,omitempty"`
	Events       []EventRecord  `json:"events,omitempty"`
}

// EventRecord is the JSON shape of a span event.
type EventRecord struct {
	Name       string         `json:"name"`
	Timestamp  string         `json:"timestamp"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// NewSpanRecord converts a finished span.
func NewSpanRecord(span sdktrace.ReadOnlySpan) SpanRecord {
	sc := span.SpanContext()

	rec := SpanRecord{
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		Name:       span.Name(),
		Kind:       kindName(span.SpanKind()),
		StartTime:  span.StartTime().Format(time.RFC3339Nano),
		EndTime:    span.EndTime().Format(time.RFC3339Nano),
		DurationMs: float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000.0,
		Status:     "UNSET",
		StatusMsg:  span.Status().Description,
		Attributes: make(map[string]any, len(span.Attributes())),
	}
	if span.Parent().IsValid() {
		rec.ParentSpanID = span.Parent().SpanID().String()
	}

	switch span.Status().Code {
	case codes.Ok:
		rec.Status = "OK"
	case codes.Error:
		rec.Status = "ERROR"
	}

	for _, kv := range span.Attributes() {
		rec.Attributes[string(kv.Key)] = kv.Value.AsInterface()
	}

	for _, evt := range span.Events() {
		attrs := make(map[string]any, len(evt.Attributes))
		for _, kv := range evt.Attributes {
			attrs[string(kv.Key)] = kv.Value.AsInterface()
		}
		rec.Events = append(rec.Events, EventRecord{
			Name:       evt.Name,
			Timestamp:  evt.Time.Format(time.RFC3339Nano),
			Attributes: attrs,
		})
	}
	return rec
}

func kindName(kind trace.SpanKind) string {
	switch kind {
	case trace.SpanKindInternal:
		return "INTERNAL"
	case trace.SpanKindServer:
		return "SERVER"
	case trace.SpanKindClient:
		return "CLIENT"
	case trace.SpanKindProducer:
		return "PRODUCER"
	case trace.SpanKindConsumer:
		return "CONSUMER"
	default:
		return "UNSPECIFIED"
	}
}
