package ports

import (
	"context"
	"time"
)

// MetricsExporter exports forwarding metrics to an external observability
// system.
type MetricsExporter interface {
	// RecordDelivery records the outcome of one forwarded event.
	RecordDelivery(ctx context.Context, d *DeliveryMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// DeliveryMetrics describes one forwarding attempt.
type DeliveryMetrics struct {
	HookEvent         string
	Delivered         bool
	TranscriptEntries int64
	TranscriptRecords int64
	SendDuration      time.Duration
}
