// Package anchor places floated submenu panels next to the item that opened
// them, inside a viewport, and reports each placement on a later turn.
package anchor

import (
	"log"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// Rect is a cell rectangle on the terminal.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Side is where a panel ended up relative to its anchor.
type Side int

const (
	SideEnd Side = iota
	SideStart
)

func (s Side) String() string {
	if s == SideStart {
		return "start"
	}
	return "end"
}

// Placement is a computed panel rectangle.
type Placement struct {
	Rect Rect
	Side Side
}

// Layout returns the current rectangle of an element, if it is laid out.
type Layout func(el menu.Element) (Rect, bool)

// Size returns the width and height of the panel floated from anchor.
type Size func(anchor menu.Element) (w, h int)

// Region implements menu.Positioner for a terminal grid.
type Region struct {
	layout   Layout
	size     Size
	schedule Scheduler
	dir      menu.Direction

	placements map[menu.Element]Placement
	listeners  map[menu.Element][]*subscription
}

// NewRegion returns a region that settles through schedule.
func NewRegion(layout Layout, size Size, schedule Scheduler) *Region {
	if schedule == nil {
		schedule = Immediate
	}
	return &Region{
		layout:     layout,
		size:       size,
		schedule:   schedule,
		placements: make(map[menu.Element]Placement),
		listeners:  make(map[menu.Element][]*subscription),
	}
}

// SetDirection makes panels prefer the start side in RTL.
func (r *Region) SetDirection(d menu.Direction) { r.dir = d }

type subscription struct {
	fn   func()
	live bool
}

func (s *subscription) Unsubscribe() { s.live = false }

// Position implements menu.Positioner. The previous placement for anchor is
// dropped at once and recomputed when the scheduler runs.
func (r *Region) Position(anchor, viewport menu.Element, onSettled func()) menu.Subscription {
	sub := &subscription{fn: onSettled, live: true}
	r.listeners[anchor] = append(r.listeners[anchor], sub)
	delete(r.placements, anchor)
	r.schedule(func() { r.settle(anchor, viewport) })
	return sub
}

// Reposition recomputes the placement of every open anchor, as after a
// resize. Anchors that have collapsed since they were placed are forgotten.
func (r *Region) Reposition(viewport menu.Element) {
	for anchor := range r.listeners {
		if e, ok := anchor.(expander); ok && !e.Expanded() {
			r.Forget(anchor)
			continue
		}
		r.schedule(func() { r.settle(anchor, viewport) })
	}
}

type expander interface {
	Expanded() bool
}

// Placement returns the last settled placement for anchor.
func (r *Region) Placement(anchor menu.Element) (Placement, bool) {
	p, ok := r.placements[anchor]
	return p, ok
}

// Forget drops the placement and listeners kept for anchor.
func (r *Region) Forget(anchor menu.Element) {
	delete(r.placements, anchor)
	delete(r.listeners, anchor)
}

func (r *Region) settle(anchor, viewport menu.Element) {
	a, ok := r.lookup(anchor)
	if !ok && r.layout != nil {
		log.Printf("warning: anchor %v has no layout, placing at origin", anchor)
	}
	v, ok := r.lookup(viewport)
	if !ok {
		v = Rect{W: a.Right() + 80, H: a.Bottom() + 40}
	}
	w, h := 0, 0
	if r.size != nil {
		w, h = r.size(anchor)
	}
	r.placements[anchor] = Place(a, v, w, h, r.dir)

	live := r.listeners[anchor][:0]
	for _, s := range r.listeners[anchor] {
		if s.live {
			live = append(live, s)
		}
	}
	r.listeners[anchor] = live
	for _, s := range live {
		if s.live {
			s.fn()
		}
	}
}

func (r *Region) lookup(el menu.Element) (Rect, bool) {
	if r.layout == nil || el == nil {
		return Rect{}, false
	}
	return r.layout(el)
}

// Place computes where a w×h panel goes next to anchor inside viewport. The
// panel opens on the end side (right in LTR) and flips when that overflows
// and the other side has more room. It is then clamped into the viewport.
func Place(anchor, viewport Rect, w, h int, dir menu.Direction) Placement {
	endX := anchor.Right()
	startX := anchor.X - w
	roomEnd := viewport.Right() - endX
	roomStart := anchor.X - viewport.X

	side := SideEnd
	if dir == menu.RTL {
		side = SideStart
	}
	switch side {
	case SideEnd:
		if w > roomEnd && roomStart > roomEnd {
			side = SideStart
		}
	case SideStart:
		if w > roomStart && roomEnd > roomStart {
			side = SideEnd
		}
	}

	x := endX
	if side == SideStart {
		x = startX
	}
	y := anchor.Y
	if y+h > viewport.Bottom() {
		y = viewport.Bottom() - h
	}
	x = max(viewport.X, min(x, viewport.Right()-w))
	y = max(viewport.Y, y)
	return Placement{Rect: Rect{X: x, Y: y, W: w, H: h}, Side: side}
}
