package observability

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans emitted by this module.
const TracerName = "github.com/matzehuels/graphlayers"

// InitTracing installs a global tracer provider that writes finished spans
// to w as JSON. The returned function flushes and stops the provider.
func InitTracing(ctx context.Context, w io.Writer, serviceName, serviceVersion string) (func(context.Context) error, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// TracingHooks turns hook events into OpenTelemetry spans. A run or an
// HTTP request opens a parent span; stage spans are recorded below it when
// the stage completes, backdated by its duration. Cache events become
// events on the parent span.
type TracingHooks struct {
	tracer trace.Tracer
}

// NewTracingHooks creates hooks that trace through tp, or through the
// global provider when tp is nil.
func NewTracingHooks(tp trace.TracerProvider) *TracingHooks {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingHooks{tracer: tp.Tracer(TracerName)}
}

func (h *TracingHooks) record(ctx context.Context, name string, d time.Duration, err error, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, name,
		trace.WithTimestamp(end.Add(-d)),
		trace.WithAttributes(attrs...),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End(trace.WithTimestamp(end))
}

// finish closes the parent span opened by OnRunStart or OnRequest.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (h *TracingHooks) OnRunStart(ctx context.Context, runID string) context.Context {
	ctx, _ = h.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("run.id", runID)))
	return ctx
}

func (h *TracingHooks) OnRunComplete(ctx context.Context, _ time.Duration, err error) {
	finish(trace.SpanFromContext(ctx), err)
}

func (h *TracingHooks) OnLoadStart(context.Context, string) {}

func (h *TracingHooks) OnLoadComplete(ctx context.Context, source string, vertexCount, edgeCount int, d time.Duration, err error) {
	h.record(ctx, "graph.load", d, err,
		attribute.String("graph.source", source),
		attribute.Int("graph.vertices", vertexCount),
		attribute.Int("graph.edges", edgeCount),
	)
}

func (h *TracingHooks) OnLayersStart(context.Context, int, int) {}

func (h *TracingHooks) OnLayersComplete(ctx context.Context, start, layerCount int, d time.Duration, err error) {
	h.record(ctx, "layers.compute", d, err,
		attribute.Int("layers.start", start),
		attribute.Int("layers.count", layerCount),
	)
}

func (h *TracingHooks) OnReportStart(context.Context, string) {}

func (h *TracingHooks) OnReportComplete(ctx context.Context, format string, d time.Duration, err error) {
	h.record(ctx, "report.write", d, err, attribute.String("report.format", format))
}

func (h *TracingHooks) OnCacheHit(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.hit", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

func (h *TracingHooks) OnCacheMiss(ctx context.Context, keyType string) {
	trace.SpanFromContext(ctx).AddEvent("cache.miss", trace.WithAttributes(attribute.String("cache.key_type", keyType)))
}

func (h *TracingHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	trace.SpanFromContext(ctx).AddEvent("cache.set", trace.WithAttributes(
		attribute.String("cache.key_type", keyType),
		attribute.Int("cache.size", size),
	))
}

func (h *TracingHooks) OnRequest(ctx context.Context, method, path string) context.Context {
	ctx, _ = h.tracer.Start(ctx, "http.request",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("http.method", method), attribute.String("http.target", path)),
	)
	return ctx
}

func (h *TracingHooks) OnResponse(ctx context.Context, method, route string, statusCode int, _ time.Duration) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
	)
	var err error
	if statusCode >= 500 {
		err = fmt.Errorf("status %d", statusCode)
	}
	finish(span, err)
}

var (
	_ PipelineHooks = (*TracingHooks)(nil)
	_ CacheHooks    = (*TracingHooks)(nil)
	_ HTTPHooks     = (*TracingHooks)(nil)
)
