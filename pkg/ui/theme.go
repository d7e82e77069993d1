// Package ui provides the terminal user interface for menuwork.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/menuwork/pkg/export"
)

// Theme holds the colors and styles used by every view.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Panel    lipgloss.Style

	Glyphs export.Glyphs
}

// DefaultTheme returns the dark palette with unicode glyphs.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#B4A0FF"},
		Secondary: lipgloss.AdaptiveColor{Light: "#1B7F5C", Dark: "#5FD7AF"},
		Highlight: lipgloss.AdaptiveColor{Light: "#9A5B00", Dark: "#FFD75F"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#444444", Dark: "#C6C6C6"},
		Muted:     lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"},
		Border:    lipgloss.AdaptiveColor{Light: "#BCBCBC", Dark: "#4E4E4E"},
		Danger:    lipgloss.AdaptiveColor{Light: "#C00000", Dark: "#FF5F5F"},
		Glyphs:    export.UnicodeGlyphs,
	}
	t.restyle()
	return t
}

// LightTheme swaps in colors that read on a light background regardless of
// what the terminal reports.
func LightTheme(r *lipgloss.Renderer) Theme {
	t := DefaultTheme(r)
	for _, c := range []*lipgloss.AdaptiveColor{&t.Primary, &t.Secondary, &t.Highlight, &t.Subtext, &t.Muted, &t.Border, &t.Danger} {
		c.Dark = c.Light
	}
	t.restyle()
	return t
}

// ThemeFor picks a palette and glyph set by name.
func ThemeFor(r *lipgloss.Renderer, name, glyphs string) Theme {
	t := DefaultTheme(r)
	if name == "light" {
		t = LightTheme(r)
	}
	if glyphs == "ascii" {
		t.Glyphs = export.ASCIIGlyphs
	}
	return t
}

func (t *Theme) restyle() {
	r := t.Renderer
	t.Base = r.NewStyle().Foreground(t.Subtext)
	t.Selected = r.NewStyle().Foreground(t.Primary).Bold(true).Reverse(true)
	t.Disabled = r.NewStyle().Foreground(t.Muted).Faint(true)
	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}
