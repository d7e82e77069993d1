package menu

import (
	"errors"
	"fmt"
)

// InvariantError describes a broken structural rule in one menu.
type InvariantError struct {
	Path   string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("menu %q: %s", e.Path, e.Reason)
}

// CheckInvariants verifies every menu in the tree rooted at m:
//   - exactly one child holds a reachable stop when any child is focusable,
//     none otherwise. An open child that handed its stop to its submenu
//     counts as holding it.
//   - at most one child is expanded, and it is the recorded expanded child.
func CheckInvariants(m *Menu) error {
	var errs []error
	m.Walk(func(cur *Menu) {
		path := menuPath(cur)
		focusable, reachable, expanded := 0, 0, 0
		for _, c := range cur.children {
			if IsFocusable(c) {
				focusable++
			}
			if c.TabStop() == TabStopReachable {
				reachable++
			}
			if it, ok := c.(*Item); ok && it.expanded {
				expanded++
				if cur.expandedChild != it {
					errs = append(errs, &InvariantError{path, fmt.Sprintf("child %q is expanded but not recorded", it.ID())})
				}
			}
		}
		if reachable == 0 && delegated(cur) {
			reachable = 1
		}
		want := 0
		if focusable > 0 {
			want = 1
		}
		if reachable != want {
			errs = append(errs, &InvariantError{path, fmt.Sprintf("%d reachable tab stops, want %d", reachable, want)})
		}
		if expanded > 1 {
			errs = append(errs, &InvariantError{path, fmt.Sprintf("%d expanded children", expanded)})
		}
	})
	return errors.Join(errs...)
}

// delegated reports whether cur's stop moved into the open submenu of its
// focused child.
func delegated(cur *Menu) bool {
	it, ok := cur.focusedChild().(*Item)
	if !ok || !it.expanded || it.submenu == nil {
		return false
	}
	for _, c := range it.submenu.children {
		if c.TabStop() == TabStopReachable {
			return true
		}
	}
	return false
}

func menuPath(m *Menu) string {
	if m.owner == nil {
		return "/"
	}
	return m.owner.Path()
}
