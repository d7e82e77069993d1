package ui

import (
	"strings"

	"github.com/vanderheijden86/menuwork/pkg/export"
	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// outlineLine is one row of the outline with its branch prefix.
type outlineLine struct {
	prefix  string
	element menu.Element
}

// OutlineModel shows the whole tree, open or not, as a scrollable outline.
type OutlineModel struct {
	lines  []outlineLine
	offset int
	width  int
	height int
	theme  Theme
}

// NewOutlineModel creates an empty outline.
func NewOutlineModel(theme Theme) OutlineModel {
	return OutlineModel{theme: theme}
}

// SetSize updates the outline dimensions
func (o *OutlineModel) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.clampOffset()
}

// Build flattens root with branch characters.
func (o *OutlineModel) Build(root *menu.Menu) {
	o.lines = o.lines[:0]
	var walk func(m *menu.Menu, indent string)
	walk = func(m *menu.Menu, indent string) {
		children := m.Children()
		for i, el := range children {
			last := i == len(children)-1
			branch, next := "├── ", "│   "
			if last {
				branch, next = "└── ", "    "
			}
			o.lines = append(o.lines, outlineLine{prefix: indent + branch, element: el})
			if it, ok := el.(*menu.Item); ok && it.HasSubmenu() {
				walk(it.Submenu(), indent+next)
			}
		}
	}
	if root != nil {
		walk(root, "")
	}
	o.clampOffset()
}

// Len returns the number of outline rows.
func (o *OutlineModel) Len() int { return len(o.lines) }

// ScrollDown moves the window one row down
func (o *OutlineModel) ScrollDown() {
	o.offset++
	o.clampOffset()
}

// ScrollUp moves the window one row up
func (o *OutlineModel) ScrollUp() {
	o.offset--
	o.clampOffset()
}

// Reveal scrolls so that el is visible.
func (o *OutlineModel) Reveal(el menu.Element) {
	for i, l := range o.lines {
		if l.element != el {
			continue
		}
		if i < o.offset {
			o.offset = i
		} else if o.height > 0 && i >= o.offset+o.height {
			o.offset = i - o.height + 1
		}
		return
	}
}

func (o *OutlineModel) clampOffset() {
	limit := len(o.lines) - o.height
	if o.height <= 0 {
		limit = len(o.lines) - 1
	}
	o.offset = max(0, min(o.offset, limit))
}

// View renders the visible window, highlighting active.
func (o *OutlineModel) View(active menu.Element) string {
	t := o.theme
	r := t.Renderer
	if len(o.lines) == 0 {
		return r.NewStyle().Foreground(t.Muted).Render("Menu is empty.")
	}
	treeStyle := r.NewStyle().Foreground(t.Muted)

	end := len(o.lines)
	if o.height > 0 {
		end = min(end, o.offset+o.height)
	}
	var sb strings.Builder
	for i := o.offset; i < end; i++ {
		l := o.lines[i]
		text := export.RowText(l.element, t.Glyphs, 0)
		switch {
		case l.element == active:
			text = t.Selected.Render(text)
		case l.element.Role() == menu.RoleSeparator:
			text = treeStyle.Render(text)
		case !menu.IsFocusable(l.element):
			text = t.Disabled.Render(text)
		default:
			text = t.Base.Render(text)
		}
		sb.WriteString(treeStyle.Render(l.prefix))
		sb.WriteString(text)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
