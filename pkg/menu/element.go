package menu

import "slices"

// Element is anything that can sit in a Menu's child list.
type Element interface {
	Role() Role
	Parent() Element
	TabStop() TabStop

	setParent(m *Menu)
	setTabStop(t TabStop)
}

// Decorated is the content of an item row: optional start and end slots
// around the label.
type Decorated struct {
	Start string
	Label string
	End   string
}

// Divider is a non-focusable separator. It bounds radio groups.
type Divider struct {
	parent *Menu
}

// NewDivider returns a detached separator.
func NewDivider() *Divider { return &Divider{} }

func (d *Divider) Role() Role { return RoleSeparator }

func (d *Divider) Parent() Element {
	if d.parent == nil {
		return nil
	}
	return d.parent
}

func (d *Divider) TabStop() TabStop { return TabStopUnreachable }

func (d *Divider) setParent(m *Menu) { d.parent = m }
func (d *Divider) setTabStop(_ TabStop) {}

// Subscription is a registered listener. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// Positioner places a floated panel relative to an anchor inside a viewport.
// onSettled runs after every placement until the returned subscription is
// released. It may run during Position or on any later turn.
type Positioner interface {
	Position(anchor, viewport Element, onSettled func()) Subscription
}

// ExpansionChanged is delivered to an item's parent whenever the item opens
// or closes its submenu.
type ExpansionChanged struct {
	Source   *Item
	Expanded bool
}

// SelectionChanged is delivered when an item is activated or its checked
// state changes. It bubbles to every enclosing menu.
type SelectionChanged struct {
	Source *Item
}

type listener[T any] struct {
	fn   func(T)
	list *listenerList[T]
}

func (l *listener[T]) Unsubscribe() {
	if l.list == nil {
		return
	}
	l.list.entries = slices.DeleteFunc(l.list.entries, func(e *listener[T]) bool { return e == l })
	l.list = nil
}

type listenerList[T any] struct {
	entries []*listener[T]
}

func (ll *listenerList[T]) add(fn func(T)) Subscription {
	l := &listener[T]{fn: fn, list: ll}
	ll.entries = append(ll.entries, l)
	return l
}

// emit delivers v to a snapshot of the current listeners, skipping any that
// were released by an earlier listener in the same delivery.
func (ll *listenerList[T]) emit(v T) {
	for _, l := range slices.Clone(ll.entries) {
		if l.list == ll {
			l.fn(v)
		}
	}
}

func (ll *listenerList[T]) len() int { return len(ll.entries) }

// oneShot runs fn at most once and releases its subscription before doing so.
type oneShot struct {
	fn   func()
	sub  Subscription
	done bool
}

func (o *oneShot) fire() {
	if o.done {
		return
	}
	o.done = true
	if o.sub != nil {
		o.sub.Unsubscribe()
		o.sub = nil
	}
	o.fn()
}

func (o *oneShot) cancel() {
	o.done = true
	if o.sub != nil {
		o.sub.Unsubscribe()
		o.sub = nil
	}
}

// attach records the subscription returned by the positioner. If the
// callback already fired during the Position call the subscription is
// released right away.
func (o *oneShot) attach(sub Subscription) {
	if sub == nil {
		return
	}
	if o.done {
		sub.Unsubscribe()
		return
	}
	o.sub = sub
}

type nopSubscription struct{}

func (nopSubscription) Unsubscribe() {}
