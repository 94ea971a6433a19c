// Package session persists conversation transcripts as JSONL files, one file
// per conversation. This is a CLI convenience: the agent core itself keeps no
// state beyond the in-memory transcript.
//
// File format:
//
//	Line 1:  {"_type":"metadata","key":"…","created_at":"…","updated_at":"…"}
//	Line 2+: one JSON message object per line
package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Void-n-Null/MiniCouncil/internal/schema"
)

// Store reads and writes transcripts under a sessions directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dataDir, creating the sessions
// subdirectory if necessary.
func NewStore(dataDir string) (*Store, error) {
	dir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the transcript for key, overwriting any previous file. The
// created_at stamp of an existing file is preserved; only updated_at moves.
func (s *Store) Save(key string, messages schema.Messages) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	path := s.sessionPath(key)
	now := time.Now().UTC().Format(time.RFC3339)
	created := s.createdAt(path)
	if created == "" {
		created = now
	}
	meta := map[string]any{
		"_type":      "metadata",
		"key":        key,
		"created_at": created,
		"updated_at": now,
	}
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	for _, msg := range messages.Messages {
		if err := enc.Encode(messageToWire(msg)); err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", path, err)
	}
	return nil
}

// createdAt reads the created_at stamp from an existing session file, or ""
// when the file is missing or carries no metadata line.
func (s *Store) createdAt(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		var data map[string]any
		if json.Unmarshal(scanner.Bytes(), &data) == nil && data["_type"] == "metadata" {
			created, _ := data["created_at"].(string)
			return created
		}
	}
	return ""
}

// List returns the keys of all stored sessions, newest first.
func (s *Store) List() []string {
	entries, _ := filepath.Glob(filepath.Join(s.dir, "*.jsonl"))

	type stamped struct {
		key     string
		updated string
	}
	var found []stamped
	for _, path := range entries {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		if scanner.Scan() {
			var data map[string]any
			if json.Unmarshal(scanner.Bytes(), &data) == nil && data["_type"] == "metadata" {
				key, _ := data["key"].(string)
				if key == "" {
					key = strings.TrimSuffix(filepath.Base(path), ".jsonl")
				}
				updated, _ := data["updated_at"].(string)
				found = append(found, stamped{key: key, updated: updated})
			}
		}
		f.Close()
	}

	// RFC3339 sorts lexicographically.
	sort.Slice(found, func(i, j int) bool { return found[i].updated > found[j].updated })

	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.key
	}
	return out
}

func (s *Store) sessionPath(key string) string {
	safe := strings.NewReplacer(":", "_", "/", "_").Replace(key)
	return filepath.Join(s.dir, safe+".jsonl")
}

// wireMessage is the on-disk JSON representation of one message.
type wireMessage struct {
	Role       string           `json:"role"`
	Content    any              `json:"content"`
	ToolCalls  []map[string]any `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	Name       string           `json:"name,omitempty"`
	Timestamp  string           `json:"timestamp"`
}

func messageToWire(msg schema.Message) wireMessage {
	w := wireMessage{
		Role:       msg.Role,
		ToolCallID: msg.ToolCallID,
		Name:       msg.ToolName,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if msg.Content != nil {
		w.Content = *msg.Content
	}
	for _, tc := range msg.ToolCalls {
		w.ToolCalls = append(w.ToolCalls, tc.ToWireMap())
	}
	return w
}
