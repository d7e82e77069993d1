package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

const helpRoles = `**Items**
- plain items run their command or open their submenu
- checkbox items toggle
- radio items check themselves and clear their group up to the next separator
- disabled items are skipped by arrows and ignore activation

**Focus**
- one item per menu is the tab stop
- Tab enters the menu at the remembered item
- leaving the menu closes every open submenu`

// HelpMarkdown builds the quick reference from the live key bindings. The
// open and close arrows follow the reading direction.
func HelpMarkdown(keys KeyMap, dir menu.Direction) string {
	open, closeB := keys.Right, keys.Left
	if dir == menu.RTL {
		open, closeB = closeB, open
	}
	row := func(b key.Binding, desc string) string {
		return fmt.Sprintf("| `%s` | %s |\n", b.Help().Key, desc)
	}

	var b strings.Builder
	b.WriteString("## Quick Reference\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	b.WriteString(row(keys.Up, "previous item"))
	b.WriteString(row(keys.Down, "next item"))
	b.WriteString(row(keys.Home, "first item"))
	b.WriteString(row(keys.End, "last item"))
	b.WriteString(row(open, "open submenu"))
	b.WriteString(row(closeB, "close submenu"))
	b.WriteString(row(keys.Activate, "activate"))
	b.WriteString(row(keys.Tab, "focus the menu"))
	b.WriteString(row(keys.Blur, "leave the menu"))
	b.WriteString(row(keys.Outline, "toggle outline"))
	b.WriteString(row(keys.Copy, "copy item path"))
	b.WriteString(row(keys.Quit, "quit"))
	b.WriteString("\n")
	b.WriteString(helpRoles)
	b.WriteString("\n")
	return b.String()
}

// helpRenderer renders markdown once per width and style.
type helpRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func (h *helpRenderer) render(md string, style string, width int) string {
	if h.renderer == nil || h.width != width || h.style != style {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		h.renderer, h.width, h.style = r, width, style
	}
	out, err := h.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// RenderHelp renders the help modal centered in a width×height area.
func RenderHelp(h *helpRenderer, md string, theme Theme, style string, width, height int) string {
	modalWidth := 64
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	r := theme.Renderer
	body := h.render(md, style, modalWidth-6)
	footer := r.NewStyle().Foreground(theme.Muted).Italic(true).Render("? or Esc to close")

	modal := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth).
		Render(body + "\n\n" + footer)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
