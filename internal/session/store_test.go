package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
)

func buildTranscript() schema.Messages {
	msgs := schema.NewMessages()
	msgs.AddSystem("You are a helpful assistant.")
	msgs.AddUser("what time is it?")
	call := schema.ToolCall{ID: "call_1", Name: "current_time", Arguments: `{}`}
	msgs.AddToolCall([]schema.ToolCall{call})
	msgs.AddToolResult(call, "2024-03-07 22:05:09")
	msgs.AddAssistant("It is 22:05.")
	return msgs
}

func TestSaveWritesJSONL(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	msgs := buildTranscript()
	if err := store.Save("abc", msgs); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.dir, "abc.jsonl"))
	if err != nil {
		t.Fatalf("read session file: %v", err)
	}
	lines := splitLines(data)
	if len(lines) != msgs.Len()+1 {
		t.Fatalf("expected %d lines (metadata + messages), got %d", msgs.Len()+1, len(lines))
	}

	var meta map[string]any
	if err := json.Unmarshal(lines[0], &meta); err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	if meta["_type"] != "metadata" || meta["key"] != "abc" {
		t.Errorf("unexpected metadata: %v", meta)
	}
	if created, _ := meta["created_at"].(string); created == "" {
		t.Errorf("expected created_at in metadata, got %v", meta)
	}
	if updated, _ := meta["updated_at"].(string); updated == "" {
		t.Errorf("expected updated_at in metadata, got %v", meta)
	}

	var toolCallMsg map[string]any
	if err := json.Unmarshal(lines[3], &toolCallMsg); err != nil {
		t.Fatalf("parse tool-call message: %v", err)
	}
	if toolCallMsg["role"] != "assistant" {
		t.Errorf("expected assistant role, got %v", toolCallMsg["role"])
	}
	if toolCallMsg["content"] != nil {
		t.Errorf("expected null content on tool-call message, got %v", toolCallMsg["content"])
	}
	calls, ok := toolCallMsg["tool_calls"].([]any)
	if !ok || len(calls) != 1 {
		t.Fatalf("expected one serialised tool call, got %v", toolCallMsg["tool_calls"])
	}

	var toolResultMsg map[string]any
	if err := json.Unmarshal(lines[4], &toolResultMsg); err != nil {
		t.Fatalf("parse tool-result message: %v", err)
	}
	if toolResultMsg["role"] != "tool" || toolResultMsg["tool_call_id"] != "call_1" {
		t.Errorf("unexpected tool-result message: %v", toolResultMsg)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	msgs := schema.NewMessages()
	msgs.AddUser("first")
	if err := store.Save("s1", msgs); err != nil {
		t.Fatalf("save: %v", err)
	}
	firstCreated := readCreatedAt(t, filepath.Join(store.dir, "s1.jsonl"))
	if firstCreated == "" {
		t.Fatal("expected created_at after first save")
	}

	msgs.AddAssistant("second")
	if err := store.Save("s1", msgs); err != nil {
		t.Fatalf("save again: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.dir, "s1.jsonl"))
	if err != nil {
		t.Fatalf("read session file: %v", err)
	}
	if got := len(splitLines(data)); got != 3 {
		t.Errorf("expected 3 lines after overwrite, got %d", got)
	}
	if got := readCreatedAt(t, filepath.Join(store.dir, "s1.jsonl")); got != firstCreated {
		t.Errorf("expected created_at preserved across saves, got %q then %q", firstCreated, got)
	}
}

func readCreatedAt(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read session file: %v", err)
	}
	var meta map[string]any
	if err := json.Unmarshal(splitLines(data)[0], &meta); err != nil {
		t.Fatalf("parse metadata: %v", err)
	}
	created, _ := meta["created_at"].(string)
	return created
}

func TestListNewestFirst(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	msgs := schema.NewMessages()
	msgs.AddUser("hi")
	for _, key := range []string{"older", "newer"} {
		if err := store.Save(key, msgs); err != nil {
			t.Fatalf("save %s: %v", key, err)
		}
	}

	keys := store.List()
	if len(keys) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(keys))
	}
	for _, key := range []string{"older", "newer"} {
		if !contains(keys, key) {
			t.Errorf("expected key %q in %v", key, keys)
		}
	}
}

func TestSessionPathSanitised(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	msgs := schema.NewMessages()
	msgs.AddUser("hi")
	if err := store.Save("a/b:c", msgs); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.dir, "a_b_c.jsonl")); err != nil {
		t.Errorf("expected sanitised filename, stat failed: %v", err)
	}
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

func contains(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}
