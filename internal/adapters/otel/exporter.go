package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/agent-monitor/internal/ports"
)

const (
	serviceName    = "agent-monitor"
	serviceVersion = "1.0.0"
)

// Exporter exports forwarder self-metrics to an OTEL Collector.
type Exporter struct {
	provider          *sdkmetric.MeterProvider
	meter             metric.Meter
	eventsTotal       metric.Int64Counter
	transcriptEntries metric.Int64Counter
	transcriptRecords metric.Int64Counter
	sendDuration      metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	eventsTotal, err := meter.Int64Counter(
		"agent_monitor_events_total",
		metric.WithDescription("Total hook events processed"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}

	transcriptEntries, err := meter.Int64Counter(
		"agent_monitor_transcript_entries_total",
		metric.WithDescription("Raw transcript entries read during enrichment"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcript entries counter: %w", err)
	}

	transcriptRecords, err := meter.Int64Counter(
		"agent_monitor_transcript_records_total",
		metric.WithDescription("Simplified transcript records attached to events"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcript records counter: %w", err)
	}

	sendDuration, err := meter.Float64Histogram(
		"agent_monitor_send_duration_seconds",
		metric.WithDescription("Time spent delivering an event to the monitor"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating send duration histogram: %w", err)
	}

	return &Exporter{
		provider:          provider,
		meter:             meter,
		eventsTotal:       eventsTotal,
		transcriptEntries: transcriptEntries,
		transcriptRecords: transcriptRecords,
		sendDuration:      sendDuration,
	}, nil
}

// RecordDelivery exports metrics for one processed hook event.
func (e *Exporter) RecordDelivery(ctx context.Context, d *ports.DeliveryMetrics) error {
	attrs := []attribute.KeyValue{
		attribute.String("hook_event", d.HookEvent),
		attribute.Bool("delivered", d.Delivered),
	}
	opt := metric.WithAttributes(attrs...)

	e.eventsTotal.Add(ctx, 1, opt)
	e.sendDuration.Record(ctx, d.SendDuration.Seconds(), opt)

	hookOpt := metric.WithAttributes(attribute.String("hook_event", d.HookEvent))
	if d.TranscriptEntries > 0 {
		e.transcriptEntries.Add(ctx, d.TranscriptEntries, hookOpt)
	}
	if d.TranscriptRecords > 0 {
		e.transcriptRecords.Add(ctx, d.TranscriptRecords, hookOpt)
	}

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
