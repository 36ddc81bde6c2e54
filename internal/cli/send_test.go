package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emiliopalmerini/agent-monitor/internal/domain"
)

type sinkRecorder struct {
	events []*domain.Event
	err    error
}

func (s *sinkRecorder) Send(ctx context.Context, event *domain.Event) error {
	s.events = append(s.events, event)
	return s.err
}

// isolateConfig keeps the host's config file and environment out of a
// test run.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"AGENT_MONITOR_URL",
		"AGENT_MONITOR_DEBUG",
		"AGENT_MONITOR_OTEL_ENABLED",
		"AGENT_MONITOR_OTEL_ENDPOINT",
		"AGENT_MONITOR_OTEL_INSECURE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func pipeStdin(t *testing.T, input []byte) {
	t.Helper()
	oldStdin := os.Stdin
	t.Cleanup(func() { os.Stdin = oldStdin })

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdin = r
	go func() {
		_, _ = w.Write(input)
		_ = w.Close()
	}()
}

// captureStderr runs fn and returns what it wrote to stderr.
func captureStderr(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStderr := os.Stderr
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	os.Stderr = w

	err := fn()

	_ = w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}

func TestRunSend_ForwardsEvent(t *testing.T) {
	isolateConfig(t)

	transcriptPath := filepath.Join(t.TempDir(), "transcript.jsonl")
	lines := `{"type":"user","message":{"role":"user","content":"fix the bug"}}
{"type":"assistant","message":{"role":"assistant","content":"On it.","usage":{"input_tokens":7,"output_tokens":3}}}
`
	if err := os.WriteFile(transcriptPath, []byte(lines), 0644); err != nil {
		t.Fatalf("failed to write transcript: %v", err)
	}

	sink := &sinkRecorder{}
	testSinkOverride = sink
	defer func() { testSinkOverride = nil }()

	pipeStdin(t, []byte(`{"session_id":"sess-42","hook_event_name":"Stop","transcript_path":"`+transcriptPath+`"}`))

	stderr, err := captureStderr(t, func() error { return runSend(nil, nil) })
	if err != nil {
		t.Fatalf("runSend failed: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 forwarded event, got %d", len(sink.events))
	}
	event := sink.events[0]
	assertEqual(t, "session_id", "sess-42", event.SessionID)
	assertEqual(t, "hook_event", "Stop", event.HookEvent)
	assertEqual(t, "transcript records", 2, len(event.Transcript))
	if event.EventID == "" {
		t.Error("expected a generated event id")
	}
	if event.Extra.Usage == nil {
		t.Fatal("expected usage totals")
	}
	assertEqual(t, "input tokens", int64(7), event.Extra.Usage.InputTokens)

	if !strings.Contains(stderr, "[agent-monitor] Stop: read 2 raw, 2 simplified from "+transcriptPath) {
		t.Errorf("expected transcript diagnostic on stderr, got %q", stderr)
	}
}

func TestRunSend_EmptyObjectStillForwards(t *testing.T) {
	isolateConfig(t)

	sink := &sinkRecorder{}
	testSinkOverride = sink
	defer func() { testSinkOverride = nil }()

	pipeStdin(t, []byte(`{}`))

	if _, err := captureStderr(t, func() error { return runSend(nil, nil) }); err != nil {
		t.Fatalf("runSend failed: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 forwarded event, got %d", len(sink.events))
	}
	assertEqual(t, "session_id", "unknown", sink.events[0].SessionID)
}

func TestRunSend_MalformedInputIsSilent(t *testing.T) {
	isolateConfig(t)

	sink := &sinkRecorder{}
	testSinkOverride = sink
	defer func() { testSinkOverride = nil }()

	pipeStdin(t, []byte(`this is not json`))

	stderr, err := captureStderr(t, func() error { return runSend(nil, nil) })
	if err != nil {
		t.Fatalf("expected silent discard, got error: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no output for malformed input, got %q", stderr)
	}
	if len(sink.events) != 0 {
		t.Errorf("expected no forwarded events, got %d", len(sink.events))
	}
}

func TestRunSend_UnreachableEndpointStillSucceeds(t *testing.T) {
	isolateConfig(t)
	// Nothing listens on port 9; delivery fails, the command must not.
	t.Setenv("AGENT_MONITOR_URL", "http://127.0.0.1:9")

	pipeStdin(t, []byte(`{"session_id":"sess-1","hook_event_name":"Notification"}`))

	if _, err := captureStderr(t, func() error { return runSend(nil, nil) }); err != nil {
		t.Fatalf("expected success despite unreachable endpoint, got %v", err)
	}
}

func assertEqual[T comparable](t *testing.T, name string, expected, actual T) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", name, expected, actual)
	}
}
