package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

func TestBuiltinMenusValidate(t *testing.T) {
	for _, s := range BuiltinMenus() {
		if err := s.Validate(); err != nil {
			t.Errorf("builtin %s: unexpected error: %v", s.Name, err)
		}
	}
	if _, ok := Builtin("editor"); !ok {
		t.Error("expected editor builtin")
	}
	if _, ok := Builtin("missing"); ok {
		t.Error("expected missing builtin to be absent")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	s := MenuSpec{
		Direction: "up",
		Items: []ItemSpec{
			{Separator: true, Label: "oops"},
			{Label: ""},
			{Label: "Bad", Role: "button"},
			{Label: "Box", Role: "menuitemcheckbox", Items: []ItemSpec{{Label: "x"}}},
			{Label: "Both", Ref: "r", Items: []ItemSpec{{Label: "x"}}},
			{Label: "Plain", Checked: true},
			{Label: "Dangling", Ref: "nowhere"},
		},
	}
	err := s.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		"menu name cannot be empty",
		"invalid direction",
		"items[0]: separator cannot carry other fields",
		"items[1]: item label cannot be empty",
		"items[2]: invalid role: button",
		"items[3]: menuitemcheckbox items cannot open a submenu",
		"items[4]: ref and items are exclusive",
		"items[5]: only checkbox and radio items can be checked",
		"items[6]: unknown ref: nowhere",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got:\n%v", want, err)
		}
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Error("expected a *ValidationError in the chain")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := EditorMenu()
	clone := orig.Clone()
	clone.Items[0].Items[0].Label = "changed"
	clone.Menus["recent"].Items[0].Label = "changed"
	if orig.Items[0].Items[0].Label == "changed" {
		t.Error("expected item edits not to reach the original")
	}
	if orig.Menus["recent"].Items[0].Label == "changed" {
		t.Error("expected named menu edits not to reach the original")
	}
}

func TestBuild(t *testing.T) {
	spec := EditorMenu()
	root := Build(&spec)
	if root.Len() != 5 {
		t.Fatalf("expected 5 top-level children, got %d", root.Len())
	}
	items := root.Items()
	file := items[0]
	if !file.HasSubmenu() || file.Submenu().Len() != 6 {
		t.Errorf("expected File to own 6 children")
	}
	recent := file.Submenu().Items()[2]
	if recent.Label() != "Open Recent" || !recent.HasSubmenu() || recent.Submenu().Len() != 3 {
		t.Errorf("expected Open Recent to resolve its ref into 3 items")
	}
	if root.Children()[3].Role() != menu.RoleSeparator {
		t.Errorf("expected a separator at index 3, got %v", root.Children()[3].Role())
	}

	view := items[2].Submenu().Items()
	if view[0].Role() != menu.RoleMenuItemCheckbox || !view[0].Checked() {
		t.Error("expected Word Wrap checked checkbox")
	}
	if view[0].StartColumns() != 1 {
		t.Errorf("expected 1 start column in View, got %d", view[0].StartColumns())
	}
	spec0, ok := SpecOf(view[0])
	if !ok || spec0.Label != "Word Wrap" || spec0.Items != nil {
		t.Errorf("expected spec data on the item, got %+v", spec0)
	}
	if err := menu.CheckInvariants(root); err != nil {
		t.Error(err)
	}
}

func TestBuildStopsSelfReference(t *testing.T) {
	spec := MenuSpec{
		Name:  "loop",
		Menus: map[string]SubmenuSpec{"a": {Items: []ItemSpec{{Label: "again", Ref: "a"}}}},
		Items: []ItemSpec{{Label: "start", Ref: "a"}},
	}
	root := Build(&spec)
	start := root.Items()[0]
	again := start.Submenu().Items()[0]
	if again.HasSubmenu() {
		t.Error("expected the recursive ref not to expand again")
	}
}

func TestRefs(t *testing.T) {
	spec := EditorMenu()
	refs := spec.Refs()
	if len(refs[""]) != 1 || refs[""][0] != "recent" {
		t.Errorf("expected top level to reference recent, got %v", refs[""])
	}
	if len(refs["recent"]) != 0 {
		t.Errorf("expected recent to reference nothing, got %v", refs["recent"])
	}
}
