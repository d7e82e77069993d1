package menu

import "testing"

// fakeRegion records positioning requests and settles them only when the
// test flushes, like a collaborator that answers on a later turn.
type fakeRegion struct {
	calls   int
	subs    []*fakeSub
	pending []*fakeSub
}

type fakeSub struct {
	anchor Element
	fn     func()
	live   bool
}

func (s *fakeSub) Unsubscribe() { s.live = false }

func (r *fakeRegion) Position(anchor, _ Element, onSettled func()) Subscription {
	r.calls++
	s := &fakeSub{anchor: anchor, fn: onSettled, live: true}
	r.subs = append(r.subs, s)
	r.pending = append(r.pending, s)
	return s
}

// flush settles every request made since the last flush.
func (r *fakeRegion) flush() {
	p := r.pending
	r.pending = nil
	for _, s := range p {
		if s.live {
			s.fn()
		}
	}
}

// resettle fires every live subscription again, as a reposition would.
func (r *fakeRegion) resettle() {
	for _, s := range r.subs {
		if s.live {
			s.fn()
		}
	}
}

func (r *fakeRegion) live() int {
	n := 0
	for _, s := range r.subs {
		if s.live {
			n++
		}
	}
	return n
}

// mount attaches root to a fresh document using region for positioning.
func mount(root *Menu, region Positioner) *Document {
	d := NewDocument()
	d.SetPositioner(region)
	d.Mount(root)
	return d
}

func reachableCount(m *Menu) int {
	n := 0
	for _, c := range m.Children() {
		if c.TabStop() == TabStopReachable {
			n++
		}
	}
	return n
}

func assertInvariants(t *testing.T, m *Menu) {
	t.Helper()
	if err := CheckInvariants(m); err != nil {
		t.Fatalf("invariants broken: %v", err)
	}
}

// fileMenu builds: A, B(submenu x, y), C(submenu z).
func fileMenu() (root *Menu, a, b, c, x, y, z *Item) {
	x = NewItem("x")
	y = NewItem("y")
	z = NewItem("z")
	a = NewItem("A")
	b = NewItem("B", WithSubmenu(New(x, y)))
	c = NewItem("C", WithSubmenu(New(z)))
	root = New(a, b, c)
	return root, a, b, c, x, y, z
}
