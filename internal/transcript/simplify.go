package transcript

import "encoding/json"

// Record type discriminators.
const (
	RecordTypeMessage = "message"
	RecordTypeToolUse = "tool_use"
)

// Record is a flattened projection of a transcript entry: either a text
// message or a single tool invocation.
type Record struct {
	Type      string          `json:"type"`
	Role      string          `json:"role"`
	Text      string          `json:"text,omitempty"`
	ToolName  string          `json:"tool_name,omitempty"`
	ToolInput json.RawMessage `json:"tool_input,omitempty"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	UUID      string          `json:"uuid,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// Simplify flattens entries into records, preserving entry order. An entry
// with text yields one message record; its tool_use blocks follow as
// separate records. textLimit bounds message text in characters when
// positive. The returned slice is never nil.
func Simplify(entries []Entry, textLimit int) []Record {
	records := make([]Record, 0, len(entries))

	for _, entry := range entries {
		if entry.Type != "user" && entry.Type != "assistant" {
			continue
		}
		if entry.Message == nil {
			continue
		}

		role := entry.Message.Role
		if role == "" {
			role = entry.Type
		}

		if text, ok := entry.Message.Content.Text(); ok && text != "" {
			records = append(records, Record{
				Type:      RecordTypeMessage,
				Role:      role,
				Text:      truncate(text, textLimit),
				UUID:      entry.UUID,
				Timestamp: entry.Timestamp,
			})
		}

		for _, tool := range entry.Message.Content.ToolUses() {
			records = append(records, Record{
				Type:      RecordTypeToolUse,
				Role:      "assistant",
				ToolName:  tool.Name,
				ToolInput: tool.Input,
				ToolUseID: tool.ID,
				UUID:      entry.UUID,
				Timestamp: entry.Timestamp,
			})
		}
	}

	return records
}

// truncate bounds s to the first n characters, not bytes.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
