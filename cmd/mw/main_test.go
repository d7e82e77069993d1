package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/menuwork/pkg/anchor"
	"github.com/vanderheijden86/menuwork/pkg/config"
	"github.com/vanderheijden86/menuwork/pkg/export"
	"github.com/vanderheijden86/menuwork/pkg/menu"
	"github.com/vanderheijden86/menuwork/pkg/model"
	"github.com/vanderheijden86/menuwork/pkg/store"
)

const sampleMenu = `name: sample
title: Sample
items:
  - label: One
  - label: Two
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func mountEditor() *menu.Document {
	s := model.EditorMenu()
	doc := menu.NewDocument()
	doc.SetPositioner(anchor.NewRegion(nil, nil, anchor.Immediate))
	doc.Mount(model.Build(&s))
	return doc
}

func activePath(doc *menu.Document) string {
	if it, ok := doc.Active().(*menu.Item); ok {
		return it.Path()
	}
	return ""
}

func TestReplayKeys(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"", ""},
		{"tab", "File"},
		{"tab,down", "Edit"},
		{"tab, right", "File/New"},
		{"tab,right,left", "File"},
		{"tab,end", "Help"},
		{"tab,esc", ""},
	}
	for _, tt := range tests {
		doc := mountEditor()
		if err := replayKeys(doc, tt.keys); err != nil {
			t.Fatalf("replayKeys(%q) failed: %v", tt.keys, err)
		}
		if got := activePath(doc); got != tt.want {
			t.Errorf("replayKeys(%q): expected active %q, got %q", tt.keys, tt.want, got)
		}
	}
}

func TestReplayKeysErrors(t *testing.T) {
	if err := replayKeys(mountEditor(), "tab,fly"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := replayKeys(mountEditor(), "down"); err == nil {
		t.Error("expected error for a key with nothing focused")
	}
}

func TestRobotStateJSON(t *testing.T) {
	s := model.EditorMenu()
	out, err := robotStateJSON(&s, "", "tab,down,down,right")
	if err != nil {
		t.Fatalf("robotStateJSON failed: %v", err)
	}
	var snap export.StateSnapshot
	if err := json.Unmarshal(out, &snap); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if snap.Name != "editor" {
		t.Errorf("expected name editor, got %q", snap.Name)
	}
	if snap.Active != "View/Word Wrap" {
		t.Errorf("expected View/Word Wrap active, got %q", snap.Active)
	}
	if !snap.InvariantsOK {
		t.Errorf("expected invariants to hold: %s", snap.InvariantErrs)
	}
	if snap.Direction != "ltr" {
		t.Errorf("expected ltr, got %q", snap.Direction)
	}
}

// rtl swaps the arrows, so left opens.
func TestRobotStateJSONRightToLeft(t *testing.T) {
	s := model.EditorMenu()
	out, err := robotStateJSON(&s, "rtl", "tab,left")
	if err != nil {
		t.Fatalf("robotStateJSON failed: %v", err)
	}
	var snap export.StateSnapshot
	if err := json.Unmarshal(out, &snap); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if snap.Active != "File/New" {
		t.Errorf("expected File/New active, got %q", snap.Active)
	}
}

func TestResolveSpecBuiltins(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()

	spec, path, err := resolveSpec(source{builtin: "context"}, cfg, dir)
	if err != nil || spec.Name != "context" || path != "" {
		t.Errorf("expected built-in context, got %v %q %v", spec, path, err)
	}
	spec, _, err = resolveSpec(source{choice: builtinPrefix + "editor"}, cfg, dir)
	if err != nil || spec.Name != "editor" {
		t.Errorf("expected picked editor, got %v %v", spec, err)
	}
	if _, _, err := resolveSpec(source{builtin: "nope"}, cfg, dir); err == nil {
		t.Error("expected error for unknown built-in")
	}

	// nothing discovered falls back to the editor menu
	spec, path, err = resolveSpec(source{}, cfg, dir)
	if err != nil || spec.Name != "editor" || path != "" {
		t.Errorf("expected editor fallback, got %v %q %v", spec, path, err)
	}
}

func TestResolveSpecFiles(t *testing.T) {
	cfg := config.DefaultConfig()
	dir := t.TempDir()
	file := filepath.Join(dir, "sample.menu.yaml")
	writeFile(t, file, sampleMenu)

	// the single discovered file is opened
	spec, path, err := resolveSpec(source{}, cfg, dir)
	if err != nil {
		t.Fatalf("resolveSpec failed: %v", err)
	}
	if spec.Name != "sample" || path != file {
		t.Errorf("expected sample at %s, got %q at %s", file, spec.Name, path)
	}

	// a second file makes discovery ambiguous, so the configured menu wins
	writeFile(t, filepath.Join(dir, "other.menu.yaml"), strings.Replace(sampleMenu, "sample", "other", 1))
	cfg.Menu = "other.menu.yaml"
	spec, _, err = resolveSpec(source{}, cfg, dir)
	if err != nil || spec.Name != "other" {
		t.Errorf("expected configured menu other, got %v %v", spec, err)
	}

	// an explicit file beats config
	spec, _, err = resolveSpec(source{file: file}, cfg, dir)
	if err != nil || spec.Name != "sample" {
		t.Errorf("expected explicit sample, got %v %v", spec, err)
	}

	if _, _, err := resolveSpec(source{file: filepath.Join(dir, "missing.menu.yaml")}, cfg, dir); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestListMenus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.menu.yaml"), strings.Replace(sampleMenu, "sample", "beta", 1))
	writeFile(t, filepath.Join(dir, "a.menu.yaml"), strings.Replace(sampleMenu, "sample", "alpha", 1))

	var buf bytes.Buffer
	if err := listMenus(&buf, config.DefaultConfig(), dir); err != nil {
		t.Fatalf("listMenus failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "alpha") || !strings.Contains(lines[0], "a.menu.yaml") {
		t.Errorf("expected alpha first, got %q", lines[0])
	}

	buf.Reset()
	if err := listMenus(&buf, config.DefaultConfig(), t.TempDir()); err != nil {
		t.Fatalf("listMenus failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No menu files") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "menu.md")
	svg := filepath.Join(dir, "menu.svg")
	s := model.ContextMenu()
	if err := exportAll(&s, md, svg, ""); err != nil {
		t.Fatalf("exportAll failed: %v", err)
	}
	data, err := os.ReadFile(md)
	if err != nil {
		t.Fatalf("markdown not written: %v", err)
	}
	if !strings.Contains(string(data), "Context") || !strings.Contains(string(data), "Share") {
		t.Errorf("expected title and items in markdown, got %q", data)
	}
	data, err = os.ReadFile(svg)
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("expected an svg document")
	}
}

func TestHistoryJSON(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i, p := range []string{"File/New", "Edit/Undo", "File/New"} {
		if err := st.RecordActivation(ctx, "editor", p, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("RecordActivation failed: %v", err)
		}
	}

	out, err := historyJSON(ctx, st, "editor", 2)
	if err != nil {
		t.Fatalf("historyJSON failed: %v", err)
	}
	var h historyOutput
	if err := json.Unmarshal(out, &h); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(h.Recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h.Recent))
	}
	if h.Recent[0].Path != "File/New" || h.Recent[0].Count != 2 {
		t.Errorf("expected File/New x2 first, got %+v", h.Recent[0])
	}
	if h.Recent[1].Path != "Edit/Undo" || h.Recent[1].Count != 1 {
		t.Errorf("expected Edit/Undo x1 second, got %+v", h.Recent[1])
	}

	out, err = historyJSON(ctx, st, "context", 5)
	if err != nil {
		t.Fatalf("historyJSON failed: %v", err)
	}
	if !strings.Contains(string(out), `"recent": []`) {
		t.Errorf("expected an empty list, got %s", out)
	}
}
