package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/menuwork/pkg/anchor"
	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// panel is one visible menu level and where it sits on screen.
type panel struct {
	menu *menu.Menu
	rect anchor.Rect
}

// layoutState is shared with the anchor region, which looks up rects while
// it settles.
type layoutState struct {
	viewport anchor.Rect
	panels   []panel
	rows     map[menu.Element]anchor.Rect
}

func newLayoutState() *layoutState {
	return &layoutState{rows: make(map[menu.Element]anchor.Rect)}
}

// rect answers anchor.Layout lookups. The root menu is the viewport.
func (l *layoutState) rect(root *menu.Menu, el menu.Element) (anchor.Rect, bool) {
	if m, ok := el.(*menu.Menu); ok && m == root {
		return l.viewport, true
	}
	r, ok := l.rows[el]
	return r, ok
}

// hit returns the element under x, y, searching the topmost panel first.
func (l *layoutState) hit(x, y int) menu.Element {
	for i := len(l.panels) - 1; i >= 0; i-- {
		p := l.panels[i]
		if !p.rect.Contains(x, y) {
			continue
		}
		row := y - p.rect.Y - 1
		children := p.menu.Children()
		if row < 0 || row >= len(children) {
			return nil
		}
		return children[row]
	}
	return nil
}

// columns are the widths shared by every row of one menu.
type columns struct {
	stop  int
	check int
	start int
	label int
	end   int
	arrow int
}

func (c columns) inner() int {
	w := c.stop + c.label
	for _, n := range []int{c.check, c.start, c.end, c.arrow} {
		if n > 0 {
			w += n + 1
		}
	}
	return max(w, 6)
}

// measure sizes the columns of m. Items report how many leading columns
// their menu reserves.
func measure(m *menu.Menu, t Theme, maxLabel int, showStops bool) columns {
	var c columns
	if showStops {
		c.stop = 2
	}
	lead := 0
	for _, el := range m.Children() {
		it, ok := el.(*menu.Item)
		if !ok {
			continue
		}
		content := it.Content()
		c.label = max(c.label, runewidth.StringWidth(clip(content.Label, maxLabel)))
		c.start = max(c.start, runewidth.StringWidth(content.Start))
		c.end = max(c.end, runewidth.StringWidth(content.End))
		if it.HasSubmenu() {
			c.arrow = runewidth.StringWidth(t.Glyphs.Submenu)
		}
		lead = it.StartColumns()
	}
	// one leading column without start content is the check column
	if lead == 2 || (lead == 1 && c.start == 0) {
		c.check = max(runewidth.StringWidth(t.Glyphs.Checked), runewidth.StringWidth(t.Glyphs.RadioOn))
	}
	return c
}

// panelSize is the outer size of the panel drawn for m.
func panelSize(m *menu.Menu, t Theme, maxLabel int, showStops bool) (w, h int) {
	c := measure(m, t, maxLabel, showStops)
	return c.inner() + 4, m.Len() + 2
}

func clip(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// rowText lays out one item row at exactly the inner width.
func rowText(el menu.Element, c columns, t Theme, maxLabel int) string {
	inner := c.inner()
	it, ok := el.(*menu.Item)
	if !ok {
		return strings.Repeat(t.Glyphs.Separator, inner)
	}
	var b strings.Builder
	if c.stop > 0 {
		if it.TabStop() == menu.TabStopReachable {
			b.WriteString("• ")
		} else {
			b.WriteString("  ")
		}
	}
	if c.check > 0 {
		glyph := ""
		switch it.Role() {
		case menu.RoleMenuItemCheckbox:
			glyph = pickGlyph(it.Checked(), t.Glyphs.Checked, t.Glyphs.Unchecked)
		case menu.RoleMenuItemRadio:
			glyph = pickGlyph(it.Checked(), t.Glyphs.RadioOn, t.Glyphs.RadioOff)
		}
		b.WriteString(runewidth.FillRight(glyph, c.check) + " ")
	}
	content := it.Content()
	if c.start > 0 {
		b.WriteString(runewidth.FillRight(content.Start, c.start) + " ")
	}
	b.WriteString(runewidth.FillRight(clip(content.Label, maxLabel), c.label))
	if c.end > 0 {
		b.WriteString(" " + runewidth.FillLeft(content.End, c.end))
	}
	if c.arrow > 0 {
		arrow := ""
		if it.HasSubmenu() {
			arrow = t.Glyphs.Submenu
		}
		b.WriteString(" " + runewidth.FillRight(arrow, c.arrow))
	}
	return runewidth.FillRight(b.String(), inner)
}

func pickGlyph(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// renderPanel draws m with its border. The focused row is highlighted and
// the border lights up while focus is inside this level.
func renderPanel(m *menu.Menu, active menu.Element, t Theme, maxLabel int, showStops bool) string {
	c := measure(m, t, maxLabel, showStops)
	lines := make([]string, 0, m.Len())
	focusedHere := false
	for _, el := range m.Children() {
		text := rowText(el, c, t, maxLabel)
		switch {
		case el == active:
			focusedHere = true
			text = t.Selected.Render(text)
		case el.Role() == menu.RoleSeparator:
			text = t.Renderer.NewStyle().Foreground(t.Border).Render(text)
		case !menu.IsFocusable(el):
			text = t.Disabled.Render(text)
		default:
			if it, ok := el.(*menu.Item); ok && it.Expanded() {
				text = t.Renderer.NewStyle().Foreground(t.Highlight).Render(text)
			} else {
				text = t.Base.Render(text)
			}
		}
		lines = append(lines, text)
	}
	style := t.Panel
	if focusedHere {
		style = style.BorderForeground(t.Primary)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// canvas is a fixed grid of lines that panels are painted onto.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, lines: make([]string, height)}
	for i := range c.lines {
		c.lines[i] = strings.Repeat(" ", width)
	}
	return c
}

// paint overlays block with its top-left corner at x, y, clipping at the
// canvas edges.
func (c *canvas) paint(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) || x >= c.width {
			continue
		}
		c.lines[row] = overlayLine(c.lines[row], line, x, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// overlayLine replaces the cells of bg starting at column x with fg.
func overlayLine(bg, fg string, x, width int) string {
	if x < 0 {
		fg = ansi.TruncateLeft(fg, -x, "")
		x = 0
	}
	fg = ansi.Truncate(fg, width-x, "")
	left := ansi.Truncate(bg, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(bg, x+ansi.StringWidth(fg), "")
	return left + fg + right
}
