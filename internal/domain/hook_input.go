package domain

import (
	"encoding/json"
	"fmt"
)

// HookInput is the JSON payload the agent runtime writes to stdin when it
// invokes a hook. Only the recognized fields are decoded; unknown keys are
// ignored. Source and Reason are pointers because their mere presence in
// the input is meaningful.
type HookInput struct {
	SessionID        string          `json:"session_id"`
	HookEventName    string          `json:"hook_event_name"`
	TranscriptPath   string          `json:"transcript_path"`
	Cwd              string          `json:"cwd"`
	ToolName         string          `json:"tool_name"`
	ToolInput        json.RawMessage `json:"tool_input"`
	NotificationType string          `json:"notification_type"`
	Error            string          `json:"error"`
	ErrorMessage     string          `json:"error_message"`
	SubagentID       string          `json:"subagent_id"`
	AgentID          string          `json:"agent_id"`
	Task             string          `json:"task"`
	Description      string          `json:"description"`
	Source           *string         `json:"source"`
	Reason           *string         `json:"reason"`
}

// ParseHookInput decodes a raw hook payload. A missing hook_event_name is
// tolerated; the event is forwarded without enrichment in that case.
func ParseHookInput(data []byte) (*HookInput, error) {
	var input HookInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}
	return &input, nil
}

// ErrorText returns the failure description for tool failure events,
// preferring error over error_message.
func (h *HookInput) ErrorText() string {
	if h.Error != "" {
		return h.Error
	}
	return h.ErrorMessage
}

// SubagentIdentity returns the subagent identifier, preferring subagent_id
// over agent_id.
func (h *HookInput) SubagentIdentity() string {
	if h.SubagentID != "" {
		return h.SubagentID
	}
	return h.AgentID
}

// SubagentTask returns the subagent task description, preferring task over
// description.
func (h *HookInput) SubagentTask() string {
	if h.Task != "" {
		return h.Task
	}
	return h.Description
}

// IsFailureEvent reports whether this is a tool failure event.
func (h *HookInput) IsFailureEvent() bool {
	return h.HookEventName == "PostToolUseFailure"
}

// IsSubagentEvent reports whether this is a subagent lifecycle event.
func (h *HookInput) IsSubagentEvent() bool {
	return h.HookEventName == "SubagentStart" || h.HookEventName == "SubagentStop"
}

// WantsTranscript reports whether this event kind qualifies for transcript
// enrichment.
func (h *HookInput) WantsTranscript() bool {
	switch h.HookEventName {
	case "Stop", "SessionStart", "PostToolUse", "PostToolUseFailure":
		return true
	}
	return false
}
