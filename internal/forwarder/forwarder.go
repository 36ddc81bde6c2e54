// Package forwarder composes outbound events from hook input and
// delivers them to the configured sink. Delivery is best effort: a
// failed send is logged at debug level and otherwise ignored, because
// a hook must never block or break the agent session that invoked it.
package forwarder

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/agent-monitor/internal/config"
	"github.com/emiliopalmerini/agent-monitor/internal/domain"
	"github.com/emiliopalmerini/agent-monitor/internal/hostinfo"
	"github.com/emiliopalmerini/agent-monitor/internal/logging"
	"github.com/emiliopalmerini/agent-monitor/internal/ports"
	"github.com/emiliopalmerini/agent-monitor/internal/transcript"
)

// Service turns one hook input into at most one delivered event.
type Service struct {
	cfg     *config.Config
	sink    ports.EventSink
	metrics ports.MetricsExporter
	host    hostinfo.Info

	diag  io.Writer
	now   func() time.Time
	newID func() string
}

// NewService creates a forwarder service. Advisory diagnostics go to
// stderr where the agent runtime surfaces them alongside the session.
func NewService(cfg *config.Config, sink ports.EventSink, metrics ports.MetricsExporter, host hostinfo.Info) *Service {
	return &Service{
		cfg:     cfg,
		sink:    sink,
		metrics: metrics,
		host:    host,
		diag:    os.Stderr,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Forward composes the event for input, sends it, and records delivery
// metrics. Transport failures are swallowed; Forward never reports one.
func (s *Service) Forward(ctx context.Context, input *domain.HookInput) {
	event, rawEntries := s.compose(input)

	start := s.now()
	err := s.sink.Send(ctx, event)
	duration := s.now().Sub(start)
	if err != nil {
		logging.Debugf("event delivery failed: %v", err)
	}

	if err := s.metrics.RecordDelivery(ctx, &ports.DeliveryMetrics{
		HookEvent:         event.HookEvent,
		Delivered:         err == nil,
		TranscriptEntries: rawEntries,
		TranscriptRecords: int64(len(event.Transcript)),
		SendDuration:      duration,
	}); err != nil {
		logging.Debugf("failed to record metrics: %v", err)
	}
}

// Compose builds the outbound event for input without sending it.
func (s *Service) Compose(input *domain.HookInput) *domain.Event {
	event, _ := s.compose(input)
	return event
}

func (s *Service) compose(input *domain.HookInput) (*domain.Event, int64) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = "unknown"
	}

	event := &domain.Event{
		EventID:          s.newID(),
		SessionID:        sessionID,
		HookEvent:        input.HookEventName,
		Timestamp:        s.now().UTC(),
		ToolName:         input.ToolName,
		ToolInput:        input.ToolInput,
		Cwd:              input.Cwd,
		NotificationType: input.NotificationType,
		Hostname:         s.host.Hostname,
		Platform:         s.host.Platform,
		User:             s.host.User,
		MachineID:        s.host.MachineID,
		Transcript:       make([]transcript.Record, 0),
	}

	if input.IsFailureEvent() {
		event.ErrorMessage = input.ErrorText()
	}
	if input.IsSubagentEvent() {
		event.SubagentID = input.SubagentIdentity()
		event.SubagentTask = input.SubagentTask()
	}

	event.Extra.Source = input.Source
	event.Extra.Reason = input.Reason

	var rawEntries int64
	if input.WantsTranscript() {
		rawEntries = s.enrich(event, input)
	}

	return event, rawEntries
}

// enrich attaches the simplified transcript and aggregated token usage
// to event, reporting what happened on the diagnostic stream. It
// returns the number of raw entries read.
func (s *Service) enrich(event *domain.Event, input *domain.HookInput) int64 {
	hook := input.HookEventName
	path := input.TranscriptPath

	if path == "" {
		fmt.Fprintf(s.diag, "[agent-monitor] %s: no transcript_path provided\n", hook)
		return 0
	}
	if !transcript.FileExists(path) {
		fmt.Fprintf(s.diag, "[agent-monitor] %s: transcript file not found: %s\n", hook, path)
		return 0
	}

	entries, err := transcript.ReadRecent(path, s.cfg.TranscriptWindow)
	if err != nil {
		// The event still goes out, just without enrichment.
		fmt.Fprintf(s.diag, "[agent-monitor] %s: failed to read transcript: %v\n", hook, err)
		return 0
	}

	records := transcript.Simplify(entries, s.cfg.TextLimit)
	event.Transcript = records
	if usage, ok := transcript.AggregateUsage(entries); ok {
		event.Extra.Usage = &usage
	}

	fmt.Fprintf(s.diag, "[agent-monitor] %s: read %d raw, %d simplified from %s\n", hook, len(entries), len(records), path)
	return int64(len(entries))
}
