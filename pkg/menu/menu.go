package menu

import "slices"

// Menu is an ordered container of items with a single roving tab stop and
// at most one open submenu.
type Menu struct {
	children      []Element
	focusIndex    int
	expandedChild *Item

	owner *Item
	doc   *Document
	subs  []Subscription

	selection listenerList[SelectionChanged]
}

// New returns a menu holding children.
func New(children ...Element) *Menu {
	m := &Menu{focusIndex: -1}
	m.setItems(children)
	return m
}

func (m *Menu) Role() Role { return RoleMenu }

// TabStop is always unreachable: the stop lives on a child.
func (m *Menu) TabStop() TabStop { return TabStopUnreachable }

func (m *Menu) Parent() Element {
	if m.owner == nil {
		return nil
	}
	return m.owner
}

func (m *Menu) setParent(_ *Menu)    {}
func (m *Menu) setTabStop(_ TabStop) {}

// Owner returns the item this menu is nested under, if any.
func (m *Menu) Owner() *Item { return m.owner }

// Children returns a copy of the child snapshot.
func (m *Menu) Children() []Element { return slices.Clone(m.children) }

// Len returns the number of children.
func (m *Menu) Len() int { return len(m.children) }

// FocusIndex is the index of the child holding the roving stop, or -1.
func (m *Menu) FocusIndex() int { return m.focusIndex }

// ExpandedChild is the child whose submenu is open, if any.
func (m *Menu) ExpandedChild() *Item { return m.expandedChild }

// Contains reports whether el is m or sits anywhere beneath it.
func (m *Menu) Contains(el Element) bool { return contains(m, el) }

// OnSelectionChanged registers fn for selections made anywhere in the tree
// beneath m.
func (m *Menu) OnSelectionChanged(fn func(SelectionChanged)) Subscription {
	return m.selection.add(fn)
}

// SetChildren replaces the child list.
func (m *Menu) SetChildren(children ...Element) {
	m.setItems(children)
}

// Append adds el at the end.
func (m *Menu) Append(el Element) {
	m.Insert(len(m.children), el)
}

// Insert adds el before index i. i is clamped to the valid range.
func (m *Menu) Insert(i int, el Element) {
	i = max(0, min(i, len(m.children)))
	next := slices.Insert(slices.Clone(m.children), i, el)
	m.setItems(next)
}

// Remove detaches el. It reports false when el is not a child.
func (m *Menu) Remove(el Element) bool {
	i := m.indexOf(el)
	if i < 0 {
		return false
	}
	next := slices.Delete(slices.Clone(m.children), i, i+1)
	m.setItems(next)
	return true
}

// Focus moves focus to the first focusable child.
func (m *Menu) Focus() {
	m.setFocus(0, 1)
}

// CollapseExpandedItem closes the open child, if any.
func (m *Menu) CollapseExpandedItem() {
	if m.expandedChild == nil {
		return
	}
	c := m.expandedChild
	m.expandedChild = nil
	c.SetExpanded(false)
}

// HandleKey implements KeyHandler. Navigation keys are always consumed, even
// when they cannot move the stop.
func (m *Menu) HandleKey(k Key) bool {
	switch k {
	case KeyDown:
		m.setFocus(m.focusIndex+1, 1)
	case KeyUp:
		m.setFocus(m.focusIndex-1, -1)
	case KeyHome:
		m.setFocus(0, 1)
	case KeyEnd:
		m.setFocus(len(m.children)-1, -1)
	default:
		return false
	}
	return true
}

// setFocus scans from start in direction dir and moves the stop to the first
// focusable child found. Running off either end changes nothing.
func (m *Menu) setFocus(start, dir int) {
	for i := start; i >= 0 && i < len(m.children); i += dir {
		child := m.children[i]
		if !IsFocusable(child) {
			continue
		}
		if prev := m.focusedChild(); prev != nil {
			prev.setTabStop(TabStopUnreachable)
		}
		m.focusIndex = i
		child.setTabStop(TabStopReachable)
		if d := m.document(); d != nil {
			d.Focus(child)
		}
		return
	}
}

func (m *Menu) focusedChild() Element {
	if m.focusIndex < 0 || m.focusIndex >= len(m.children) {
		return nil
	}
	return m.children[m.focusIndex]
}

func (m *Menu) firstFocusable() int {
	return slices.IndexFunc(m.children, IsFocusable)
}

func (m *Menu) indexOf(el Element) int {
	if el == nil {
		return -1
	}
	return slices.IndexFunc(m.children, func(c Element) bool { return c == el })
}

// resetStops puts the stop on the first focusable child and clears the rest.
func (m *Menu) resetStops() {
	m.focusIndex = m.firstFocusable()
	for i, c := range m.children {
		if i == m.focusIndex {
			c.setTabStop(TabStopReachable)
		} else {
			c.setTabStop(TabStopUnreachable)
		}
	}
}

func (m *Menu) setItems(children []Element) {
	for _, s := range m.subs {
		s.Unsubscribe()
	}
	m.subs = m.subs[:0]

	next := make([]Element, 0, len(children))
	for _, c := range children {
		if c == nil || c == Element(m) || slices.Contains(next, c) {
			continue
		}
		next = append(next, c)
	}

	d := m.document()
	for _, old := range m.children {
		if slices.Contains(next, old) {
			continue
		}
		if d != nil && contains(old, d.Active()) {
			d.Blur()
		}
		if it, ok := old.(*Item); ok {
			it.Detach()
		}
		old.setParent(nil)
		old.setTabStop(TabStopUnreachable)
	}

	for _, c := range next {
		if p, ok := c.Parent().(*Menu); ok && p != m {
			p.Remove(c)
		}
		c.setParent(m)
	}
	m.children = next

	if m.expandedChild != nil && m.indexOf(m.expandedChild) < 0 {
		m.expandedChild = nil
	}
	m.resetStops()
	m.updateIndent()
	m.reclaimStop()
	m.followFocus()

	for _, c := range m.children {
		it, ok := c.(*Item)
		if !ok {
			continue
		}
		m.subs = append(m.subs,
			it.OnExpansionChanged(m.handleExpansionChanged),
			it.OnSelectionChanged(m.handleSelectionChanged),
		)
	}
}

// updateIndent gives every item the same number of leading columns: one for
// a check mark when any sibling is checkable, one for start content.
func (m *Menu) updateIndent() {
	var checkable, start bool
	for _, c := range m.children {
		it, ok := c.(*Item)
		if !ok {
			continue
		}
		checkable = checkable || it.role.IsCheckable()
		start = start || it.content.Start != ""
	}
	cols := 0
	if checkable {
		cols++
	}
	if start {
		cols++
	}
	for _, c := range m.children {
		if it, ok := c.(*Item); ok {
			it.startColumns = cols
		}
	}
}

func (m *Menu) handleExpansionChanged(n ExpansionChanged) {
	idx := m.indexOf(n.Source)
	if idx < 0 {
		return
	}
	if !n.Expanded {
		if m.expandedChild == n.Source {
			m.expandedChild = nil
		}
		return
	}
	if prev := m.expandedChild; prev != nil && prev != n.Source {
		prev.SetExpanded(false)
	}
	m.expandedChild = n.Source

	// A sibling holding keyboard focus keeps the stop unless the expansion
	// also asked for focus.
	if d := m.document(); d != nil {
		if active := d.Active(); active != Element(n.Source) && m.indexOf(active) >= 0 {
			if n.Source.focusOnSettle {
				d.Focus(n.Source)
			}
			return
		}
	}
	if prev := m.focusedChild(); prev != nil && m.focusIndex != idx {
		prev.setTabStop(TabStopUnreachable)
	}
	m.focusIndex = idx
	n.Source.setTabStop(TabStopReachable)
}

func (m *Menu) handleSelectionChanged(n SelectionChanged) {
	idx := m.indexOf(n.Source)
	if idx < 0 {
		return
	}
	if n.Source.role == RoleMenuItemRadio && n.Source.checked {
		m.uncheckRadios(idx, -1)
		m.uncheckRadios(idx, 1)
	}
	for cur := m; cur != nil; cur = cur.parentMenu() {
		cur.selection.emit(n)
	}
}

// uncheckRadios walks away from idx until a separator, clearing radios.
func (m *Menu) uncheckRadios(idx, dir int) {
	for i := idx + dir; i >= 0 && i < len(m.children); i += dir {
		el := m.children[i]
		if el.Role() == RoleSeparator {
			return
		}
		if it, ok := el.(*Item); ok && it.role == RoleMenuItemRadio {
			it.SetChecked(false)
		}
	}
}

// handleItemFocus moves the roving stop to an item that gained focus.
func (m *Menu) handleItemFocus(it *Item) {
	idx := m.indexOf(it)
	if idx < 0 || !IsFocusable(it) {
		return
	}
	if prev := m.focusedChild(); prev != nil && m.focusIndex != idx {
		prev.setTabStop(TabStopUnreachable)
	}
	m.focusIndex = idx
	it.setTabStop(TabStopReachable)
}

// handleFocusOut resets the menu when focus lands outside its subtree.
func (m *Menu) handleFocusOut(related Element) {
	if related != nil && m.Contains(related) {
		return
	}
	m.CollapseExpandedItem()
	if prev := m.focusedChild(); prev != nil {
		prev.setTabStop(TabStopUnreachable)
	}
	m.focusIndex = m.firstFocusable()
	if first := m.focusedChild(); first != nil {
		first.setTabStop(TabStopReachable)
	}
}

// itemStateChanged keeps the stop on a focusable child after a child's
// disabled flag flips. Focus on an item that became disabled moves to the
// new stop, or to the owning item when the menu has none.
func (m *Menu) itemStateChanged(it *Item) {
	if m.indexOf(it) < 0 {
		return
	}
	if cur := m.focusedChild(); cur == nil || !IsFocusable(cur) {
		m.resetStops()
		m.reclaimStop()
	}
	d := m.document()
	if d == nil || d.Active() != Element(it) {
		return
	}
	if IsFocusable(it) {
		m.handleItemFocus(it)
		return
	}
	switch {
	case m.focusedChild() != nil:
		d.Focus(m.focusedChild())
	case m.owner != nil && IsFocusable(m.owner):
		d.Focus(m.owner)
	default:
		d.Blur()
	}
}

// followFocus puts the stop back on the focused child after the stops were
// recomputed.
func (m *Menu) followFocus() {
	d := m.document()
	if d == nil {
		return
	}
	if it, ok := d.Active().(*Item); ok && it.parent == m {
		m.handleItemFocus(it)
	}
}

// reclaimStop hands the stop back to the owning item when nothing in m can
// hold it any more.
func (m *Menu) reclaimStop() {
	o := m.owner
	if m.focusIndex >= 0 || o == nil || o.parent == nil {
		return
	}
	if o.parent.focusedChild() == Element(o) && IsFocusable(o) {
		o.tabStop = TabStopReachable
	}
}

func (m *Menu) parentMenu() *Menu {
	if m.owner == nil {
		return nil
	}
	return m.owner.parent
}

func (m *Menu) root() *Menu {
	cur := m
	for p := cur.parentMenu(); p != nil; p = cur.parentMenu() {
		cur = p
	}
	return cur
}

func (m *Menu) document() *Document {
	return m.root().doc
}

// Walk calls fn for m and every nested menu, depth first.
func (m *Menu) Walk(fn func(*Menu)) {
	fn(m)
	for _, c := range m.children {
		if it, ok := c.(*Item); ok && it.submenu != nil {
			it.submenu.Walk(fn)
		}
	}
}

// Items returns the direct children that are items.
func (m *Menu) Items() []*Item {
	var out []*Item
	for _, c := range m.children {
		if it, ok := c.(*Item); ok {
			out = append(out, it)
		}
	}
	return out
}
