// ABOUTME: Tests for session token storage
// ABOUTME: Uses temp directories to verify file persistence and clearing

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	s := NewFileStore(t.TempDir())

	if s.Token() != "" {
		t.Errorf("expected empty token, got %q", s.Token())
	}
	if s.Authenticated() {
		t.Error("expected unauthenticated store")
	}
}

func TestFileStore_SetToken(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "jobdash")
	s := NewFileStore(dir)

	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if s.Token() != "abc" {
		t.Errorf("expected token abc, got %q", s.Token())
	}

	data, err := os.ReadFile(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("failed to read session file: %v", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("session file is not JSON: %v", err)
	}
	if raw["token"] != "abc" {
		t.Errorf("expected token key to hold abc, got %v", raw)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	if err := NewFileStore(dir).SetToken("xyz"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	if got := NewFileStore(dir).Token(); got != "xyz" {
		t.Errorf("expected xyz from fresh store, got %q", got)
	}
}

func TestFileStore_Clear(t *testing.T) {
	s := NewFileStore(t.TempDir())
	s.SetToken("abc")

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Authenticated() {
		t.Error("expected token to be cleared")
	}

	// Clearing twice is fine
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestFileStore_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600)

	s := NewFileStore(dir)
	if s.Token() != "" {
		t.Errorf("expected empty token for invalid file, got %q", s.Token())
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore("")
	if s.Authenticated() {
		t.Error("expected unauthenticated")
	}

	s.SetToken("abc")
	if s.Token() != "abc" {
		t.Errorf("expected abc, got %q", s.Token())
	}

	s.Clear()
	if s.Authenticated() {
		t.Error("expected cleared")
	}
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
