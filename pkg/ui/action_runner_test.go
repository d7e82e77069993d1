package ui

import (
	"strings"
	"testing"
)

func TestActionRunnerSuccess(t *testing.T) {
	r := NewActionRunner("sh", t.TempDir())
	if !r.IsAvailable() {
		t.Skip("sh not available")
	}
	msg := r.Run("File/New", "echo hello; echo world")().(ActionResultMsg)
	if !msg.Success {
		t.Fatalf("expected success, got %v", msg.Error)
	}
	if msg.Output != "hello\nworld" {
		t.Errorf("expected output hello\\nworld, got %q", msg.Output)
	}
	if msg.Path != "File/New" {
		t.Errorf("expected path File/New, got %q", msg.Path)
	}
}

func TestActionRunnerRunsInDir(t *testing.T) {
	dir := t.TempDir()
	r := NewActionRunner("sh", dir)
	if !r.IsAvailable() {
		t.Skip("sh not available")
	}
	msg := r.Run("pwd", "pwd")().(ActionResultMsg)
	if !msg.Success || !strings.HasSuffix(msg.Output, dir[strings.LastIndex(dir, "/"):]) {
		t.Errorf("expected command to run in %s, got %q", dir, msg.Output)
	}
}

func TestActionRunnerFailure(t *testing.T) {
	r := NewActionRunner("sh", t.TempDir())
	if !r.IsAvailable() {
		t.Skip("sh not available")
	}
	msg := r.Run("Bad", "echo broken >&2; exit 3")().(ActionResultMsg)
	if msg.Success {
		t.Fatal("expected failure")
	}
	if msg.Error == nil || !strings.Contains(msg.Error.Error(), "broken") {
		t.Errorf("expected error to carry stderr, got %v", msg.Error)
	}
}

func TestActionRunnerUnavailable(t *testing.T) {
	r := NewActionRunner("no-such-shell-for-menuwork", "")
	if r.IsAvailable() {
		t.Fatal("expected shell to be unavailable")
	}
	msg := r.Run("X", "true")().(ActionResultMsg)
	if msg.Success || msg.Error == nil {
		t.Error("expected an unavailable error")
	}
}

func TestFirstLine(t *testing.T) {
	if firstLine("a\nb") != "a" || firstLine("single") != "single" {
		t.Error("expected first line only")
	}
}
