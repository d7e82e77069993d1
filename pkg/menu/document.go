package menu

// Document owns the single focused element of a menu tree, the way a page
// owns keyboard focus.
type Document struct {
	root       *Menu
	active     Element
	positioner Positioner
	dir        Direction
}

// NewDocument returns an empty document. Mount a root menu before use.
func NewDocument() *Document {
	return &Document{}
}

// Mount makes m the document's root. A previously mounted root is released.
func (d *Document) Mount(m *Menu) {
	if d.root == m {
		return
	}
	d.Blur()
	if d.root != nil {
		d.root.doc = nil
	}
	d.root = m
	if m != nil {
		m.doc = d
	}
}

func (d *Document) Root() *Menu { return d.root }

// Active is the focused element, or nil when focus is outside the tree.
func (d *Document) Active() Element { return d.active }

// SetPositioner sets the collaborator used by items that have none of their own.
func (d *Document) SetPositioner(p Positioner) { d.positioner = p }

func (d *Document) SetDirection(dir Direction) { d.dir = dir }

func (d *Document) Direction() Direction { return d.dir }

// Focus moves focus to el. Every menu enclosing the previous element sees
// the move as a focus-out, and el's parent menu moves its stop to el.
func (d *Document) Focus(el Element) {
	prev := d.active
	if prev == el {
		return
	}
	d.active = el
	for _, m := range enclosingMenus(prev) {
		m.handleFocusOut(el)
	}
	if it, ok := el.(*Item); ok && it.parent != nil && d.active == el {
		it.parent.handleItemFocus(it)
	}
}

// Blur moves focus outside the tree.
func (d *Document) Blur() {
	d.Focus(nil)
}

// TabInto focuses the first reachable tab stop among the open menus, in
// tree order. It reports whether one was found.
func (d *Document) TabInto() bool {
	if d.root == nil {
		return false
	}
	for m := d.root; m != nil; {
		for _, c := range m.children {
			if c.TabStop() == TabStopReachable {
				d.Focus(c)
				return true
			}
		}
		if m.expandedChild == nil {
			break
		}
		m = m.expandedChild.submenu
	}
	return false
}

// DispatchKey offers k to the focused element and then to each enclosing
// element outward until one consumes it.
func (d *Document) DispatchKey(k Key) bool {
	for el := d.active; el != nil; el = el.Parent() {
		if h, ok := el.(KeyHandler); ok && h.HandleKey(k) {
			return true
		}
	}
	return false
}

// enclosingMenus lists the menus above el, innermost first.
func enclosingMenus(el Element) []*Menu {
	var out []*Menu
	if el == nil {
		return nil
	}
	for cur := el.Parent(); cur != nil; cur = cur.Parent() {
		if m, ok := cur.(*Menu); ok {
			out = append(out, m)
		}
	}
	return out
}
