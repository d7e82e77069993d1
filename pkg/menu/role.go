// Package menu implements keyboard-driven menus: a container of items with a
// single roving tab stop, items that toggle nested submenus, and the
// notifications that keep at most one submenu open per level.
//
// Everything here runs on a single event turn. Nothing is goroutine-safe.
package menu

import "strings"

// Role is the accessibility role marker an element carries.
type Role int

const (
	RoleNone Role = iota
	RoleMenu
	RoleSeparator
	RoleMenuItem
	RoleMenuItemCheckbox
	RoleMenuItemRadio
)

// roleNames is the canonical marker for each role. It is never mutated.
var roleNames = [...]string{
	RoleNone:             "none",
	RoleMenu:             "menu",
	RoleSeparator:        "separator",
	RoleMenuItem:         "menuitem",
	RoleMenuItemCheckbox: "menuitemcheckbox",
	RoleMenuItemRadio:    "menuitemradio",
}

// rolesByName inverts roleNames once at init.
var rolesByName = func() map[string]Role {
	m := make(map[string]Role, len(roleNames))
	for r, name := range roleNames {
		m[name] = Role(r)
	}
	return m
}()

// itemRoles are the markers that make an element part of the roving focus sequence.
var itemRoles = map[Role]bool{
	RoleMenuItem:         true,
	RoleMenuItemCheckbox: true,
	RoleMenuItemRadio:    true,
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// IsItem reports whether r is one of the recognized menu item roles.
func (r Role) IsItem() bool {
	return itemRoles[r]
}

// IsCheckable reports whether activation of r toggles a checked state.
func (r Role) IsCheckable() bool {
	return r == RoleMenuItemCheckbox || r == RoleMenuItemRadio
}

// ParseRole looks up a role by marker name. Matching is case-insensitive.
// An empty name parses as RoleMenuItem.
func ParseRole(name string) (Role, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return RoleMenuItem, true
	}
	r, ok := rolesByName[name]
	return r, ok
}

// IsFocusable reports whether el may hold the roving tab stop: it must carry
// an item role and must not be disabled.
func IsFocusable(el Element) bool {
	if el == nil || !el.Role().IsItem() {
		return false
	}
	if d, ok := el.(interface{ Disabled() bool }); ok && d.Disabled() {
		return false
	}
	return true
}

// TabStop is an element's place in sequential keyboard navigation.
type TabStop int

const (
	TabStopUnreachable TabStop = -1
	TabStopReachable   TabStop = 0
)

func (t TabStop) String() string {
	if t == TabStopReachable {
		return "reachable"
	}
	return "unreachable"
}

// Direction is the reading direction used to interpret Left/Right arrows.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection accepts "ltr" or "rtl"; anything else is LTR.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "rtl") {
		return RTL
	}
	return LTR
}
