package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/menuwork/pkg/menu"
	"github.com/vanderheijden86/menuwork/pkg/model"
)

func editorTree(t *testing.T) *menu.Menu {
	t.Helper()
	spec := model.EditorMenu()
	return model.Build(&spec)
}

func TestFlattenVisitsEverySubmenu(t *testing.T) {
	rows := Flatten(editorTree(t), ASCIIGlyphs, 0)
	find := func(text string) *Row {
		for i := range rows {
			if strings.Contains(rows[i].Text, text) {
				return &rows[i]
			}
		}
		return nil
	}
	if r := find("notes.md"); r == nil || r.Depth != 2 {
		t.Errorf("expected notes.md at depth 2, got %+v", r)
	}
	if r := find("Word Wrap"); r == nil || !strings.HasPrefix(r.Text, "[x]") {
		t.Errorf("expected checked box for Word Wrap, got %+v", r)
	}
	if r := find("Medium"); r == nil || !strings.HasPrefix(r.Text, "(*)") {
		t.Errorf("expected selected radio for Medium, got %+v", r)
	}
	if r := find("File"); r == nil || !strings.HasSuffix(r.Text, ">") {
		t.Errorf("expected submenu marker on File, got %+v", r)
	}
	if r := find("New"); r == nil || r.Text != "+ New (Ctrl+N)" {
		t.Errorf("expected start and end slots, got %+v", r)
	}
}

func TestRowTextTruncates(t *testing.T) {
	it := menu.NewItem("a very long label indeed")
	if got := RowText(it, ASCIIGlyphs, 8); got != "a very …" {
		t.Errorf("expected truncated label, got %q", got)
	}
}

func TestGenerateMarkdown(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	md := GenerateMarkdown(editorTree(t), "Editor", now)
	for _, want := range []string{
		"# Editor",
		"Generated: Wed, 04 Mar 2026 05:06:07 UTC",
		"- **Submenus**: 6",
		"- **Disabled**: 2",
		"  - [x] Word Wrap",
		"  - ~~Save As…~~",
		"- ---",
		"```mermaid",
		"root --> n0[\"File\"]",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q\n%s", want, md)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, editorTree(t), "Editor"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "</svg>") {
		t.Errorf("expected a complete svg document, got %q", out[:min(80, len(out))])
	}
	if !strings.Contains(out, "Open Recent") {
		t.Error("expected labels in the svg")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.png")
	if err := SavePNG(path, editorTree(t), "Editor"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("expected a valid png: %v", err)
	}
	if img.Bounds().Dx() < 100 || img.Bounds().Dy() < 100 {
		t.Errorf("unexpectedly small image: %v", img.Bounds())
	}
}

func TestStateJSON(t *testing.T) {
	root := editorTree(t)
	doc := menu.NewDocument()
	doc.Mount(root)
	root.Focus()
	doc.DispatchKey(menu.KeyRight)

	data, err := StateJSON(doc, "editor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var snap StateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if !snap.InvariantsOK || snap.Active != "File/New" {
		t.Errorf("expected focus on File/New with invariants ok, got %+v", snap)
	}
	if snap.Root.Expanded != "File" || snap.Root.Children[0].TabStop != "unreachable" {
		t.Errorf("expected File expanded with its stop handed down, got %+v", snap.Root.Children[0])
	}
	sub := snap.Root.Children[0].Submenu
	if sub == nil || !sub.Children[0].Focused || sub.Children[0].StartColumns != 1 {
		t.Errorf("expected New focused with one start column, got %+v", sub)
	}
}
