package transcript

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSimplify_MessageThenToolUses(t *testing.T) {
	content := `{"type":"assistant","uuid":"a1","timestamp":"2025-01-17T10:00:05Z","message":{"role":"assistant","content":[{"type":"text","text":"hi"},{"type":"tool_use","id":"t1","name":"Bash","input":{"cmd":"ls"}}]}}
`
	entries, err := ReadRecent(writeTranscript(t, content), 100)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}

	records := Simplify(entries, 2000)
	assertEqual(t, "len(records)", 2, len(records))

	assertEqual(t, "records[0].Type", RecordTypeMessage, records[0].Type)
	assertEqual(t, "records[0].Role", "assistant", records[0].Role)
	assertEqual(t, "records[0].Text", "hi", records[0].Text)
	assertEqual(t, "records[0].UUID", "a1", records[0].UUID)
	assertEqual(t, "records[0].Timestamp", "2025-01-17T10:00:05Z", records[0].Timestamp)

	assertEqual(t, "records[1].Type", RecordTypeToolUse, records[1].Type)
	assertEqual(t, "records[1].Role", "assistant", records[1].Role)
	assertEqual(t, "records[1].ToolName", "Bash", records[1].ToolName)
	assertEqual(t, "records[1].ToolInput", `{"cmd":"ls"}`, string(records[1].ToolInput))
	assertEqual(t, "records[1].ToolUseID", "t1", records[1].ToolUseID)
	assertEqual(t, "records[1].UUID", "a1", records[1].UUID)
}

func TestSimplify_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("x", 3000)
	entries := []Entry{{
		Type:    "user",
		Message: &Message{Role: "user", Content: contentFromJSON(t, `"`+long+`"`)},
	}}

	records := Simplify(entries, 2000)
	assertEqual(t, "len(records)", 1, len(records))
	assertEqual(t, "len(text)", 2000, len([]rune(records[0].Text)))
}

func TestSimplify_TruncationCountsCharacters(t *testing.T) {
	long := strings.Repeat("é", 3000)
	entries := []Entry{{
		Type:    "user",
		Message: &Message{Role: "user", Content: contentFromJSON(t, `"`+long+`"`)},
	}}

	records := Simplify(entries, 2000)
	assertEqual(t, "len(records)", 1, len(records))
	assertEqual(t, "rune count", 2000, len([]rune(records[0].Text)))
}

func TestSimplify_RoleFallsBackToEntryType(t *testing.T) {
	content := `{"type":"user","uuid":"u1","message":{"content":"no role here"}}
`
	entries, err := ReadRecent(writeTranscript(t, content), 100)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}

	records := Simplify(entries, 2000)
	assertEqual(t, "len(records)", 1, len(records))
	assertEqual(t, "records[0].Role", "user", records[0].Role)
}

func TestSimplify_SkipsEntriesWithoutText(t *testing.T) {
	content := `{"type":"assistant","uuid":"a1","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"Read","input":{}}]}}
{"type":"user","uuid":"u1","message":{"role":"user"}}
{"type":"user","uuid":"u2","message":{"role":"user","content":[{"type":"text","text":""}]}}
`
	entries, err := ReadRecent(writeTranscript(t, content), 100)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}

	records := Simplify(entries, 2000)
	assertEqual(t, "len(records)", 1, len(records))
	assertEqual(t, "records[0].Type", RecordTypeToolUse, records[0].Type)
	assertEqual(t, "records[0].ToolName", "Read", records[0].ToolName)
}

func TestSimplify_IgnoresNonMessageTypes(t *testing.T) {
	entries := []Entry{{
		Type:    "system",
		Message: &Message{Role: "system", Content: contentFromJSON(t, `"should not appear"`)},
	}}

	records := Simplify(entries, 2000)
	assertEqual(t, "len(records)", 0, len(records))
}

func TestSimplify_NeverReturnsNil(t *testing.T) {
	records := Simplify(nil, 2000)
	if records == nil {
		t.Fatal("expected non-nil slice")
	}

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	assertEqual(t, "json", "[]", string(data))
}

func TestSimplify_IdempotentOnUnchangedFile(t *testing.T) {
	content := `{"type":"user","uuid":"u1","timestamp":"2025-01-17T10:00:00Z","message":{"role":"user","content":"Run the tests"}}
{"type":"assistant","uuid":"a1","timestamp":"2025-01-17T10:00:05Z","message":{"role":"assistant","content":[{"type":"text","text":"Running."},{"type":"tool_use","id":"t1","name":"Bash","input":{"command":"go test ./..."}}],"usage":{"input_tokens":10,"output_tokens":4}}}
`
	path := writeTranscript(t, content)

	first := simplifiedJSON(t, path)
	second := simplifiedJSON(t, path)

	if !bytes.Equal(first, second) {
		t.Errorf("expected identical output, got\n%s\nvs\n%s", first, second)
	}
}

func simplifiedJSON(t *testing.T, path string) []byte {
	t.Helper()
	entries, err := ReadRecent(path, 100)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}
	data, err := json.Marshal(Simplify(entries, 2000))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return data
}
