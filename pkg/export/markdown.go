package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// GenerateMarkdown creates an outline report of a menu tree with a Mermaid
// diagram of its submenus.
func GenerateMarkdown(root *menu.Menu, title string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC1123)))

	items, submenus, checkable, disabled := 0, 0, 0, 0
	root.Walk(func(m *menu.Menu) {
		if m != root {
			submenus++
		}
		for _, it := range m.Items() {
			items++
			if it.Role().IsCheckable() {
				checkable++
			}
			if it.Disabled() {
				disabled++
			}
		}
	})
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Items**: %d\n", items))
	sb.WriteString(fmt.Sprintf("- **Submenus**: %d\n", submenus))
	sb.WriteString(fmt.Sprintf("- **Checkable**: %d\n", checkable))
	sb.WriteString(fmt.Sprintf("- **Disabled**: %d\n\n", disabled))

	sb.WriteString("## Outline\n\n")
	for _, row := range Flatten(root, ASCIIGlyphs, 0) {
		indent := strings.Repeat("  ", row.Depth)
		if row.Element.Role() == menu.RoleSeparator {
			sb.WriteString(indent + "- ---\n")
			continue
		}
		text := row.Text
		if it, ok := row.Element.(*menu.Item); ok && it.Disabled() {
			text = "~~" + text + "~~"
		}
		sb.WriteString(indent + "- " + text + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Structure\n\n")
	sb.WriteString("```mermaid\ngraph LR\n")
	sb.WriteString("    root[\"" + mermaidSafe(title) + "\"]\n")
	ids := map[*menu.Item]string{}
	var edges func(parentID string, m *menu.Menu)
	edges = func(parentID string, m *menu.Menu) {
		for _, it := range m.Items() {
			if !it.HasSubmenu() {
				continue
			}
			id := fmt.Sprintf("n%d", len(ids))
			ids[it] = id
			sb.WriteString(fmt.Sprintf("    %s --> %s[\"%s\"]\n", parentID, id, mermaidSafe(it.Label())))
			edges(id, it.Submenu())
		}
	}
	edges("root", root)
	sb.WriteString("```\n")

	return sb.String()
}

func mermaidSafe(s string) string {
	r := strings.NewReplacer("\"", "'", "[", "", "]", "", "(", "", ")", "")
	return r.Replace(s)
}
