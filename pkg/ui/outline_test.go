package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

func TestOutlineBuildPrefixes(t *testing.T) {
	x, y := menu.NewItem("x"), menu.NewItem("y")
	b := menu.NewItem("B", menu.WithSubmenu(menu.New(x, y)))
	root := menu.New(menu.NewItem("A"), b, menu.NewItem("C"))

	o := NewOutlineModel(plainTheme())
	o.Build(root)
	if o.Len() != 5 {
		t.Fatalf("expected 5 rows, got %d", o.Len())
	}
	want := []string{"├── ", "├── ", "│   ├── ", "│   └── ", "└── "}
	for i, w := range want {
		if o.lines[i].prefix != w {
			t.Errorf("row %d: expected prefix %q, got %q", i, w, o.lines[i].prefix)
		}
	}
	if o.lines[3].element != menu.Element(y) {
		t.Error("expected y as the fourth row")
	}
}

func TestOutlineScrollAndReveal(t *testing.T) {
	var items []menu.Element
	for _, l := range []string{"a", "b", "c", "d", "e", "f"} {
		items = append(items, menu.NewItem(l))
	}
	root := menu.New(items...)

	o := NewOutlineModel(plainTheme())
	o.Build(root)
	o.SetSize(40, 3)

	o.ScrollUp()
	if o.offset != 0 {
		t.Errorf("expected offset clamped at 0, got %d", o.offset)
	}
	for range 10 {
		o.ScrollDown()
	}
	if o.offset != 3 {
		t.Errorf("expected offset clamped at 3, got %d", o.offset)
	}

	o.Reveal(items[0])
	if o.offset != 0 {
		t.Errorf("expected offset 0 after revealing a, got %d", o.offset)
	}
	o.Reveal(items[4])
	if o.offset != 2 {
		t.Errorf("expected offset 2 after revealing e, got %d", o.offset)
	}
	view := o.View(items[4])
	if lines := strings.Split(view, "\n"); len(lines) != 3 {
		t.Errorf("expected 3 visible rows, got %d", len(lines))
	}
	if !strings.Contains(view, "e") || strings.Contains(view, "a") {
		t.Errorf("expected window c..e, got %q", view)
	}
}

func TestOutlineEmpty(t *testing.T) {
	o := NewOutlineModel(plainTheme())
	o.Build(menu.New())
	if !strings.Contains(o.View(nil), "empty") {
		t.Error("expected empty-state text")
	}
}
