// Package transcript reads and simplifies the JSONL conversation logs
// written by the agent runtime. Malformed lines, missing fields, and
// unknown content shapes degrade to smaller results instead of errors.
package transcript

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Entry is one parsed line of a transcript file.
type Entry struct {
	Type      string   `json:"type"`
	UUID      string   `json:"uuid,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Message   *Message `json:"message,omitempty"`
}

// Message is the nested message object of a user or assistant entry.
type Message struct {
	Role    string  `json:"role,omitempty"`
	Content Content `json:"content"`
	Usage   *Usage  `json:"usage,omitempty"`
}

// Usage carries the token counters reported on assistant messages.
type Usage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
}

// ContentKind discriminates the shapes a content value can take.
type ContentKind int

const (
	ContentAbsent ContentKind = iota
	ContentText
	ContentBlocks
)

// Content is a message content value, which arrives either as a plain
// string or as a list of typed blocks. Any other shape decodes to
// ContentAbsent rather than failing the entry.
type Content struct {
	kind   ContentKind
	text   string
	blocks []Block
}

func (c *Content) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		c.kind = ContentAbsent
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			c.kind = ContentAbsent
			return nil
		}
		c.kind = ContentText
		c.text = s
	case '[':
		var blocks []Block
		if err := json.Unmarshal(data, &blocks); err != nil {
			c.kind = ContentAbsent
			return nil
		}
		c.kind = ContentBlocks
		c.blocks = blocks
	default:
		c.kind = ContentAbsent
	}
	return nil
}

// Kind reports which shape the content value carried.
func (c Content) Kind() ContentKind { return c.kind }

// Text flattens the content value into plain text. Plain strings are
// returned unchanged. For block lists, text blocks (a missing text field
// contributes an empty fragment) and bare strings are joined with newlines.
// ok is false when no text fragments exist, so callers can tell "no text"
// from "empty text".
func (c Content) Text() (string, bool) {
	switch c.kind {
	case ContentText:
		return c.text, true
	case ContentBlocks:
		var fragments []string
		for _, b := range c.blocks {
			switch b.kind {
			case BlockText, BlockString:
				fragments = append(fragments, b.text)
			}
		}
		if len(fragments) == 0 {
			return "", false
		}
		return strings.Join(fragments, "\n"), true
	default:
		return "", false
	}
}

// ToolUses returns the tool invocations embedded in a block list, in
// scan order.
func (c Content) ToolUses() []ToolUse {
	if c.kind != ContentBlocks {
		return nil
	}
	var uses []ToolUse
	for _, b := range c.blocks {
		if b.kind == BlockToolUse {
			uses = append(uses, b.tool)
		}
	}
	return uses
}

// BlockKind discriminates content block shapes.
type BlockKind int

const (
	BlockUnknown BlockKind = iota
	BlockText
	BlockToolUse
	BlockString
)

// Block is a single element of a block-list content value.
type Block struct {
	kind BlockKind
	text string
	tool ToolUse
}

// ToolUse is a tool invocation block.
type ToolUse struct {
	Name  string
	Input json.RawMessage
	ID    string
}

func (b *Block) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		b.kind = BlockUnknown
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			b.kind = BlockUnknown
			return nil
		}
		b.kind = BlockString
		b.text = s
	case '{':
		var obj struct {
			Type  string          `json:"type"`
			Text  string          `json:"text"`
			Name  string          `json:"name"`
			Input json.RawMessage `json:"input"`
			ID    string          `json:"id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			b.kind = BlockUnknown
			return nil
		}
		switch obj.Type {
		case "text":
			b.kind = BlockText
			b.text = obj.Text
		case "tool_use":
			b.kind = BlockToolUse
			b.tool = ToolUse{Name: obj.Name, Input: obj.Input, ID: obj.ID}
		default:
			b.kind = BlockUnknown
		}
	default:
		b.kind = BlockUnknown
	}
	return nil
}
