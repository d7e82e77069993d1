package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/menuwork/pkg/model"
)

const editorYAML = `title: Editor
menus:
  recent:
    items:
      - label: a.txt
      - label: b.txt
items:
  - label: New
    start: "+"
    end: Ctrl+N
    exec: echo new
  - separator: true
  - label: Open Recent
    ref: recent
  - label: Word Wrap
    role: menuitemcheckbox
    checked: true
`

const contextJSON = `{"name": "ctx", "items": [{"label": "Cut"}, {"label": "Share", "items": [{"label": "Email"}]}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "editor.menu.yaml", editorYAML)
	spec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "editor" {
		t.Errorf("expected name derived from file, got %q", spec.Name)
	}
	if len(spec.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(spec.Items))
	}
	recent := spec.Items[2]
	if recent.Ref != "" || len(recent.Items) != 2 || recent.Items[1].Label != "b.txt" {
		t.Errorf("expected ref inlined, got %+v", recent)
	}
	if spec.Items[0].Exec != "echo new" || spec.Items[0].Start != "+" {
		t.Errorf("expected exec and start kept, got %+v", spec.Items[0])
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ctx.menu.json", contextJSON)
	spec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "ctx" || len(spec.Items[1].Items) != 1 {
		t.Errorf("unexpected spec: %+v", spec)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.menu.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	txt := writeFile(t, dir, "menu.txt", "items: []")
	var fe *FormatError
	if _, err := LoadFile(txt); !errors.As(err, &fe) {
		t.Errorf("expected *FormatError, got %v", err)
	}

	bad := writeFile(t, dir, "bad.menu.yaml", "items: [")
	if _, err := LoadFile(bad); err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("expected parse error, got %v", err)
	}

	invalid := writeFile(t, dir, "invalid.menu.yaml", "items:\n  - label: X\n    role: button\n")
	var ve *model.ValidationError
	if _, err := LoadFile(invalid); !errors.As(err, &ve) {
		t.Errorf("expected *model.ValidationError, got %v", err)
	}
}

func TestResolveRejectsCycles(t *testing.T) {
	spec := &model.MenuSpec{
		Name: "loop",
		Menus: map[string]model.SubmenuSpec{
			"a":    {Items: []model.ItemSpec{{Label: "to b", Ref: "b"}}},
			"b":    {Items: []model.ItemSpec{{Label: "to a", Ref: "a"}}},
			"self": {Items: []model.ItemSpec{{Label: "me", Ref: "self"}}},
			"leaf": {Items: []model.ItemSpec{{Label: "ok"}}},
		},
		Items: []model.ItemSpec{{Label: "start", Ref: "a"}, {Label: "fine", Ref: "leaf"}},
	}
	err := Resolve(spec)
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	if len(ce.Cycles) != 2 {
		t.Fatalf("expected 2 cycles, got %v", ce.Cycles)
	}
	msg := ce.Error()
	if !strings.Contains(msg, "self -> self") || !strings.Contains(msg, "a -> b") {
		t.Errorf("expected both cycles named, got %q", msg)
	}
}

func TestResolveNestedRefs(t *testing.T) {
	spec := &model.MenuSpec{
		Name: "nested",
		Menus: map[string]model.SubmenuSpec{
			"outer": {Items: []model.ItemSpec{{Label: "inner", Ref: "inner"}}},
			"inner": {Items: []model.ItemSpec{{Label: "leaf"}}},
		},
		Items: []model.ItemSpec{{Label: "top", Ref: "outer"}},
	}
	if err := Resolve(spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	leaf := spec.Items[0].Items[0].Items[0]
	if leaf.Label != "leaf" {
		t.Errorf("expected leaf two levels down, got %+v", spec.Items[0])
	}
	spec.Items[0].Items[0].Items[0].Label = "changed"
	if spec.Menus["inner"].Items[0].Label != "leaf" {
		t.Error("expected inlined items to be copies")
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "editor.menu.yaml", editorYAML),
		writeFile(t, dir, "ctx.menu.json", contextJSON),
	}
	specs, err := LoadAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 || specs[0].Name != "editor" || specs[1].Name != "ctx" {
		t.Errorf("expected input order kept, got %v, %v", specs[0].Name, specs[1].Name)
	}
	SortByName(specs)
	if specs[0].Name != "ctx" {
		t.Errorf("expected ctx first after sorting, got %s", specs[0].Name)
	}

	paths = append(paths, filepath.Join(dir, "gone.menu.yaml"))
	if _, err := LoadAll(context.Background(), paths); err == nil {
		t.Error("expected an error for the missing file")
	}
}
