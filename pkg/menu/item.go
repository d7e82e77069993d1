package menu

import "strings"

// Item is a single menu row. It may own a submenu which it opens and closes.
type Item struct {
	id       string
	role     Role
	content  Decorated
	disabled bool
	checked  bool
	expanded bool
	tabStop  TabStop
	data     any

	submenu *Menu
	parent  *Menu
	region  Positioner

	startColumns int

	// focusOnSettle is set by keyboard expansion and consumed by the first
	// settle after opening.
	focusOnSettle bool
	settle        *oneShot

	expansion listenerList[ExpansionChanged]
	selection listenerList[SelectionChanged]
}

// ItemOption configures an Item at construction.
type ItemOption func(*Item)

func WithRole(r Role) ItemOption { return func(it *Item) { it.role = r } }

func WithID(id string) ItemOption { return func(it *Item) { it.id = id } }

func WithStart(s string) ItemOption { return func(it *Item) { it.content.Start = s } }

func WithEnd(s string) ItemOption { return func(it *Item) { it.content.End = s } }

func WithDisabled(v bool) ItemOption { return func(it *Item) { it.disabled = v } }

func WithChecked(v bool) ItemOption { return func(it *Item) { it.checked = v } }

// WithData attaches an opaque value the caller can read back with Data.
func WithData(v any) ItemOption { return func(it *Item) { it.data = v } }

// WithPositioner gives the item its own positioning collaborator instead of
// the document's.
func WithPositioner(p Positioner) ItemOption { return func(it *Item) { it.region = p } }

// WithSubmenu nests m under the item.
func WithSubmenu(m *Menu) ItemOption {
	return func(it *Item) {
		if m != nil {
			m.owner = it
		}
		it.submenu = m
	}
}

// NewItem returns an inert, collapsed item with an unreachable tab stop.
func NewItem(label string, opts ...ItemOption) *Item {
	it := &Item{
		role:    RoleMenuItem,
		content: Decorated{Label: label},
		tabStop: TabStopUnreachable,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

func (it *Item) Role() Role { return it.role }
func (it *Item) TabStop() TabStop { return it.tabStop }
func (it *Item) Label() string { return it.content.Label }
func (it *Item) Content() Decorated { return it.content }
func (it *Item) Disabled() bool { return it.disabled }
func (it *Item) Checked() bool { return it.checked }
func (it *Item) Expanded() bool { return it.expanded }
func (it *Item) Data() any { return it.data }
func (it *Item) Submenu() *Menu { return it.submenu }
func (it *Item) ParentMenu() *Menu { return it.parent }
func (it *Item) StartColumns() int { return it.startColumns }
func (it *Item) setTabStop(t TabStop) { it.tabStop = t }
func (it *Item) setParent(m *Menu) { it.parent = m }

// ID returns the configured id, falling back to the label.
func (it *Item) ID() string {
	if it.id != "" {
		return it.id
	}
	return it.content.Label
}

func (it *Item) Parent() Element {
	if it.parent == nil {
		return nil
	}
	return it.parent
}

// HasSubmenu reports whether the item owns a non-empty submenu.
func (it *Item) HasSubmenu() bool {
	return it.submenu != nil && len(it.submenu.children) > 0
}

// Path joins the ids of the item and its ancestor items with "/".
func (it *Item) Path() string {
	var parts []string
	for cur := it; cur != nil; {
		parts = append(parts, cur.ID())
		if cur.parent == nil {
			break
		}
		cur = cur.parent.owner
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// OnExpansionChanged registers fn for this item's expansion notifications.
func (it *Item) OnExpansionChanged(fn func(ExpansionChanged)) Subscription {
	return it.expansion.add(fn)
}

// OnSelectionChanged registers fn for this item's selection notifications.
func (it *Item) OnSelectionChanged(fn func(SelectionChanged)) Subscription {
	return it.selection.add(fn)
}

// SetSubmenu replaces the nested menu. An open item is closed first.
func (it *Item) SetSubmenu(m *Menu) {
	if it.expanded {
		it.SetExpanded(false)
	}
	if it.submenu != nil {
		it.submenu.owner = nil
	}
	if m != nil {
		m.owner = it
	}
	it.submenu = m
}

// SetDisabled changes the disabled flag. Disabling an open item closes it.
func (it *Item) SetDisabled(v bool) {
	if it.disabled == v {
		return
	}
	it.disabled = v
	if v && it.expanded {
		it.SetExpanded(false)
	}
	if it.parent != nil {
		it.parent.itemStateChanged(it)
	}
}

// SetChecked updates the checked flag and notifies on change.
func (it *Item) SetChecked(v bool) {
	if it.checked == v {
		return
	}
	it.checked = v
	it.selection.emit(SelectionChanged{Source: it})
}

// SetExpanded opens or closes the submenu. Opening requires a live, enabled
// item with a non-empty submenu. Closing cascades into every open descendant.
func (it *Item) SetExpanded(v bool) {
	if it.expanded == v {
		return
	}
	if v && (it.disabled || it.parent == nil || !it.HasSubmenu()) {
		return
	}
	it.expanded = v
	if !v {
		it.releaseSettle()
		it.focusOnSettle = false
		if it.submenu != nil {
			it.submenu.CollapseExpandedItem()
			if d := it.document(); d != nil && contains(it.submenu, d.Active()) {
				d.Focus(it)
			}
		}
		if it.parent != nil && it.parent.focusedChild() == Element(it) {
			it.tabStop = TabStopReachable
		}
	}
	it.expansion.emit(ExpansionChanged{Source: it, Expanded: v})
	if v && it.expanded {
		it.requestPosition()
	}
}

// Activate invokes the item according to its role. A disabled item does
// nothing but still reports the activation as handled.
func (it *Item) Activate() bool {
	if it.disabled {
		return true
	}
	switch it.role {
	case RoleMenuItemCheckbox:
		it.SetChecked(!it.checked)
	case RoleMenuItemRadio:
		if !it.checked {
			it.SetChecked(true)
		}
	default:
		if it.HasSubmenu() {
			if it.expanded {
				it.SetExpanded(false)
			} else {
				it.expandAndFocus()
			}
			return true
		}
		it.selection.emit(SelectionChanged{Source: it})
	}
	return true
}

// HandleKey implements KeyHandler.
func (it *Item) HandleKey(k Key) bool {
	open, closeKey := arrows(it.direction())
	switch k {
	case KeyEnter, KeySpace:
		return it.Activate()
	case open:
		if it.disabled {
			return true
		}
		if !it.HasSubmenu() {
			return false
		}
		it.expandAndFocus()
		return true
	case closeKey:
		if !it.expanded {
			return false
		}
		it.SetExpanded(false)
		it.Focus()
		return true
	}
	return false
}

// Focus moves document focus to the item.
func (it *Item) Focus() {
	if d := it.document(); d != nil {
		d.Focus(it)
	}
}

// PointerEnter opens the submenu on hover without moving focus.
func (it *Item) PointerEnter() {
	if it.disabled || it.expanded || !it.HasSubmenu() {
		return
	}
	it.SetExpanded(true)
}

// PointerLeave closes the submenu unless focus is inside the item.
func (it *Item) PointerLeave() {
	if !it.expanded {
		return
	}
	if d := it.document(); d != nil && contains(it, d.Active()) {
		return
	}
	it.SetExpanded(false)
}

// Click activates the item.
func (it *Item) Click() bool {
	return it.Activate()
}

// Detach releases the positioning subscription and closes the item without
// notifying a parent.
func (it *Item) Detach() {
	it.releaseSettle()
	it.focusOnSettle = false
	if it.expanded {
		it.expanded = false
		if it.submenu != nil {
			it.submenu.CollapseExpandedItem()
		}
	}
}

func (it *Item) expandAndFocus() {
	if it.expanded {
		if it.settle != nil && !it.settle.done {
			it.focusOnSettle = true
			return
		}
		if d := it.document(); d != nil && d.Active() == Element(it) {
			it.focusSubmenu()
		}
		return
	}
	it.focusOnSettle = true
	it.SetExpanded(true)
	if !it.expanded {
		it.focusOnSettle = false
	}
}

func (it *Item) requestPosition() {
	it.releaseSettle()
	once := &oneShot{fn: it.submenuSettled}
	it.settle = once
	p := it.positioner()
	if p == nil {
		once.fire()
		return
	}
	once.attach(p.Position(it, it.viewport(), once.fire))
}

func (it *Item) releaseSettle() {
	if it.settle != nil {
		it.settle.cancel()
		it.settle = nil
	}
}

func (it *Item) submenuSettled() {
	if !it.focusOnSettle || !it.expanded {
		return
	}
	it.focusOnSettle = false
	it.focusSubmenu()
}

func (it *Item) focusSubmenu() {
	if it.submenu == nil {
		return
	}
	it.submenu.Focus()
	if d := it.document(); d != nil && contains(it.submenu, d.Active()) {
		it.tabStop = TabStopUnreachable
	}
}

func (it *Item) positioner() Positioner {
	if it.region != nil {
		return it.region
	}
	if d := it.document(); d != nil {
		return d.positioner
	}
	return nil
}

// viewport is the outermost menu of the tree.
func (it *Item) viewport() Element {
	if it.parent == nil {
		return nil
	}
	return it.parent.root()
}

func (it *Item) direction() Direction {
	if d := it.document(); d != nil {
		return d.dir
	}
	return LTR
}

func (it *Item) document() *Document {
	if it.parent == nil {
		return nil
	}
	return it.parent.document()
}

// contains reports whether el is root or one of its descendants.
func contains(root, el Element) bool {
	for cur := el; cur != nil; cur = cur.Parent() {
		if cur == root {
			return true
		}
	}
	return false
}
