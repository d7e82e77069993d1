package export

import (
	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// StateSnapshot is the machine-readable state of a mounted menu tree.
type StateSnapshot struct {
	Name          string    `json:"name"`
	Direction     string    `json:"direction"`
	Active        string    `json:"active,omitempty"`
	InvariantsOK  bool      `json:"invariants_ok"`
	InvariantErrs string    `json:"invariant_errors,omitempty"`
	Root          MenuState `json:"root"`
}

// MenuState describes one menu level.
type MenuState struct {
	FocusIndex int         `json:"focus_index"`
	Expanded   string      `json:"expanded,omitempty"`
	Children   []NodeState `json:"children"`
}

// NodeState describes one child of a menu.
type NodeState struct {
	Label        string     `json:"label,omitempty"`
	Path         string     `json:"path,omitempty"`
	Role         string     `json:"role"`
	TabStop      string     `json:"tab_stop"`
	Focused      bool       `json:"focused,omitempty"`
	Disabled     bool       `json:"disabled,omitempty"`
	Checked      bool       `json:"checked,omitempty"`
	Expanded     bool       `json:"expanded,omitempty"`
	StartColumns int        `json:"start_columns,omitempty"`
	Submenu      *MenuState `json:"submenu,omitempty"`
}

// Snapshot captures the state of doc's mounted tree.
func Snapshot(doc *menu.Document, name string) StateSnapshot {
	s := StateSnapshot{Name: name, Direction: doc.Direction().String(), InvariantsOK: true}
	if it, ok := doc.Active().(*menu.Item); ok {
		s.Active = it.Path()
	}
	root := doc.Root()
	if root == nil {
		return s
	}
	if err := menu.CheckInvariants(root); err != nil {
		s.InvariantsOK = false
		s.InvariantErrs = err.Error()
	}
	s.Root = menuState(doc, root)
	return s
}

func menuState(doc *menu.Document, m *menu.Menu) MenuState {
	ms := MenuState{FocusIndex: m.FocusIndex(), Children: []NodeState{}}
	if e := m.ExpandedChild(); e != nil {
		ms.Expanded = e.Path()
	}
	for _, el := range m.Children() {
		n := NodeState{
			Role:    el.Role().String(),
			TabStop: el.TabStop().String(),
			Focused: el == doc.Active(),
		}
		if it, ok := el.(*menu.Item); ok {
			n.Label = it.Label()
			n.Path = it.Path()
			n.Disabled = it.Disabled()
			n.Checked = it.Checked()
			n.Expanded = it.Expanded()
			n.StartColumns = it.StartColumns()
			if it.HasSubmenu() {
				sub := menuState(doc, it.Submenu())
				n.Submenu = &sub
			}
		}
		ms.Children = append(ms.Children, n)
	}
	return ms
}

// StateJSON renders Snapshot as indented JSON.
func StateJSON(doc *menu.Document, name string) ([]byte, error) {
	return json.MarshalIndent(Snapshot(doc, name), "", "  ")
}
