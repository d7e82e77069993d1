// Package export renders menu trees to Markdown, SVG, PNG and JSON.
package export

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// Row is one line of a fully expanded outline.
type Row struct {
	Depth   int
	Element menu.Element
	Text    string
}

// Glyphs are the symbols used in row text.
type Glyphs struct {
	Checked, Unchecked string
	RadioOn, RadioOff  string
	Submenu, Separator string
}

var UnicodeGlyphs = Glyphs{"☑", "☐", "◉", "○", "▸", "─"}
var ASCIIGlyphs = Glyphs{"[x]", "[ ]", "(*)", "( )", ">", "-"}

// Flatten walks every submenu, open or not, in document order.
func Flatten(root *menu.Menu, g Glyphs, maxWidth int) []Row {
	var rows []Row
	var walk func(m *menu.Menu, depth int)
	walk = func(m *menu.Menu, depth int) {
		for _, el := range m.Children() {
			rows = append(rows, Row{Depth: depth, Element: el, Text: RowText(el, g, maxWidth)})
			if it, ok := el.(*menu.Item); ok && it.HasSubmenu() {
				walk(it.Submenu(), depth+1)
			}
		}
	}
	walk(root, 0)
	return rows
}

// RowText is the plain text for el: check column, start slot, label, end
// slot and a submenu marker.
func RowText(el menu.Element, g Glyphs, maxWidth int) string {
	it, ok := el.(*menu.Item)
	if !ok {
		return strings.Repeat(g.Separator, 8)
	}
	var parts []string
	switch it.Role() {
	case menu.RoleMenuItemCheckbox:
		parts = append(parts, pick(it.Checked(), g.Checked, g.Unchecked))
	case menu.RoleMenuItemRadio:
		parts = append(parts, pick(it.Checked(), g.RadioOn, g.RadioOff))
	}
	c := it.Content()
	if c.Start != "" {
		parts = append(parts, c.Start)
	}
	label := c.Label
	if maxWidth > 0 {
		label = runewidth.Truncate(label, maxWidth, "…")
	}
	parts = append(parts, label)
	if c.End != "" {
		parts = append(parts, "("+c.End+")")
	}
	if it.HasSubmenu() {
		parts = append(parts, g.Submenu)
	}
	return strings.Join(parts, " ")
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
