// Package model holds declarative menu definitions and builds live menu trees
// from them.
package model

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// MenuSpec is a complete menu definition as read from a .menu.yaml or
// .menu.json file.
type MenuSpec struct {
	Name        string                 `yaml:"name" json:"name"`
	Title       string                 `yaml:"title,omitempty" json:"title,omitempty"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Direction   string                 `yaml:"direction,omitempty" json:"direction,omitempty"` // ltr, rtl
	Menus       map[string]SubmenuSpec `yaml:"menus,omitempty" json:"menus,omitempty"`         // Named submenus for ref
	Items       []ItemSpec             `yaml:"items" json:"items"`
}

// SubmenuSpec is a named, reusable list of items.
type SubmenuSpec struct {
	Items []ItemSpec `yaml:"items" json:"items"`
}

// ItemSpec describes one row.
type ItemSpec struct {
	ID          string     `yaml:"id,omitempty" json:"id,omitempty"`
	Label       string     `yaml:"label,omitempty" json:"label,omitempty"`
	Role        string     `yaml:"role,omitempty" json:"role,omitempty"` // menuitem, menuitemcheckbox, menuitemradio
	Start       string     `yaml:"start,omitempty" json:"start,omitempty"`
	End         string     `yaml:"end,omitempty" json:"end,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Exec        string     `yaml:"exec,omitempty" json:"exec,omitempty"` // Shell command run on selection
	Disabled    bool       `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Checked     bool       `yaml:"checked,omitempty" json:"checked,omitempty"`
	Separator   bool       `yaml:"separator,omitempty" json:"separator,omitempty"`
	Ref         string     `yaml:"ref,omitempty" json:"ref,omitempty"` // Name of an entry in MenuSpec.Menus
	Items       []ItemSpec `yaml:"items,omitempty" json:"items,omitempty"`
}

// Clone creates a deep copy of the spec
func (s MenuSpec) Clone() MenuSpec {
	clone := s
	clone.Items = cloneItems(s.Items)
	if s.Menus != nil {
		clone.Menus = make(map[string]SubmenuSpec, len(s.Menus))
		for name, sub := range s.Menus {
			clone.Menus[name] = SubmenuSpec{Items: cloneItems(sub.Items)}
		}
	}
	return clone
}

// Clone creates a deep copy of the item and its children
func (i ItemSpec) Clone() ItemSpec {
	clone := i
	clone.Items = cloneItems(i.Items)
	return clone
}

func cloneItems(items []ItemSpec) []ItemSpec {
	if items == nil {
		return nil
	}
	out := make([]ItemSpec, len(items))
	for idx, it := range items {
		out[idx] = it.Clone()
	}
	return out
}

// Key identifies the item within its parent for persistence.
func (i ItemSpec) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Label
}

// ValidationError points at the offending item.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Validate checks the definition and reports every problem found.
func (s *MenuSpec) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, &ValidationError{Path: "name", Reason: "menu name cannot be empty"})
	}
	if s.Direction != "" && s.Direction != "ltr" && s.Direction != "rtl" {
		errs = append(errs, &ValidationError{Path: "direction", Reason: fmt.Sprintf("invalid direction: %s", s.Direction)})
	}
	errs = append(errs, s.validateItems("items", s.Items)...)
	for name, sub := range s.Menus {
		errs = append(errs, s.validateItems("menus."+name, sub.Items)...)
	}
	return errors.Join(errs...)
}

func (s *MenuSpec) validateItems(path string, items []ItemSpec) []error {
	var errs []error
	fail := func(p, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: p, Reason: fmt.Sprintf(format, args...)})
	}
	for idx, it := range items {
		p := fmt.Sprintf("%s[%d]", path, idx)
		if it.Separator {
			if it.Label != "" || it.Role != "" || it.Ref != "" || len(it.Items) > 0 || it.Exec != "" {
				fail(p, "separator cannot carry other fields")
			}
			continue
		}
		if it.Label == "" {
			fail(p, "item label cannot be empty")
		}
		role, ok := menu.ParseRole(it.Role)
		if !ok || !role.IsItem() {
			fail(p, "invalid role: %s", it.Role)
		}
		if it.Checked && !role.IsCheckable() {
			fail(p, "only checkbox and radio items can be checked")
		}
		if it.Ref != "" && len(it.Items) > 0 {
			fail(p, "ref and items are exclusive")
		}
		if role.IsCheckable() && (it.Ref != "" || len(it.Items) > 0) {
			fail(p, "%s items cannot open a submenu", role)
		}
		if it.Ref != "" {
			if _, ok := s.Menus[it.Ref]; !ok {
				fail(p, "unknown ref: %s", it.Ref)
			}
		}
		errs = append(errs, s.validateItems(p+".items", it.Items)...)
	}
	return errs
}

// Refs returns the names each named submenu refers to, keyed by menu name.
// The top-level item list is keyed by the empty string.
func (s *MenuSpec) Refs() map[string][]string {
	out := map[string][]string{"": collectRefs(s.Items, nil)}
	for name, sub := range s.Menus {
		out[name] = collectRefs(sub.Items, nil)
	}
	return out
}

func collectRefs(items []ItemSpec, acc []string) []string {
	for _, it := range items {
		if it.Ref != "" {
			acc = append(acc, it.Ref)
		}
		acc = collectRefs(it.Items, acc)
	}
	return acc
}
