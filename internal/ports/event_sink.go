package ports

import (
	"context"

	"github.com/emiliopalmerini/agent-monitor/internal/domain"
)

// EventSink delivers composed events to the monitoring endpoint.
type EventSink interface {
	Send(ctx context.Context, event *domain.Event) error
}
