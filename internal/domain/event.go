package domain

import (
	"encoding/json"
	"time"

	"github.com/emiliopalmerini/agent-monitor/internal/transcript"
)

// Event is the payload delivered to the monitoring endpoint. Absent
// optional fields are omitted from the serialized form; extra and
// transcript are always present, empty when nothing applies.
type Event struct {
	EventID          string              `json:"event_id"`
	SessionID        string              `json:"session_id"`
	HookEvent        string              `json:"hook_event"`
	Timestamp        time.Time           `json:"timestamp"`
	ToolName         string              `json:"tool_name,omitempty"`
	ToolInput        json.RawMessage     `json:"tool_input,omitempty"`
	Cwd              string              `json:"cwd,omitempty"`
	NotificationType string              `json:"notification_type,omitempty"`
	Hostname         string              `json:"hostname"`
	Platform         string              `json:"platform"`
	User             string              `json:"user"`
	MachineID        string              `json:"machine_id,omitempty"`
	ErrorMessage     string              `json:"error_message,omitempty"`
	SubagentID       string              `json:"subagent_id,omitempty"`
	SubagentTask     string              `json:"subagent_task,omitempty"`
	Extra            Extra               `json:"extra"`
	Transcript       []transcript.Record `json:"transcript"`
}

// Extra carries optional event attributes outside the fixed schema.
type Extra struct {
	Source *string                 `json:"source,omitempty"`
	Reason *string                 `json:"reason,omitempty"`
	Usage  *transcript.UsageTotals `json:"usage,omitempty"`
}
