package model

// EditorMenu returns a text-editor style menu exercising every item kind.
func EditorMenu() MenuSpec {
	return MenuSpec{
		Name:        "editor",
		Title:       "Editor",
		Description: "File, edit and view menus of a text editor",
		Menus: map[string]SubmenuSpec{
			"recent": {Items: []ItemSpec{
				{Label: "notes.md"},
				{Label: "todo.txt"},
				{Label: "main.go"},
			}},
		},
		Items: []ItemSpec{
			{Label: "File", Items: []ItemSpec{
				{Label: "New", Start: "+", End: "Ctrl+N"},
				{Label: "Open…", End: "Ctrl+O"},
				{Label: "Open Recent", Ref: "recent"},
				{Separator: true},
				{Label: "Save", End: "Ctrl+S"},
				{Label: "Save As…", Disabled: true},
			}},
			{Label: "Edit", Items: []ItemSpec{
				{Label: "Undo", End: "Ctrl+Z"},
				{Label: "Redo", End: "Ctrl+Y", Disabled: true},
				{Separator: true},
				{Label: "Find", Items: []ItemSpec{
					{Label: "Find…", End: "Ctrl+F"},
					{Label: "Replace…", End: "Ctrl+H"},
				}},
			}},
			{Label: "View", Items: []ItemSpec{
				{Label: "Word Wrap", Role: "menuitemcheckbox", Checked: true},
				{Label: "Line Numbers", Role: "menuitemcheckbox"},
				{Separator: true},
				{Label: "Small", Role: "menuitemradio"},
				{Label: "Medium", Role: "menuitemradio", Checked: true},
				{Label: "Large", Role: "menuitemradio"},
				{Separator: true},
				{Label: "Appearance", Items: []ItemSpec{
					{Label: "Dark", Role: "menuitemradio", Checked: true},
					{Label: "Light", Role: "menuitemradio"},
				}},
			}},
			{Separator: true},
			{Label: "Help", Description: "Opens the quick reference"},
		},
	}
}

// ContextMenu returns a short right-click style menu.
func ContextMenu() MenuSpec {
	return MenuSpec{
		Name:        "context",
		Title:       "Context",
		Description: "Cut, copy and paste with a share submenu",
		Items: []ItemSpec{
			{Label: "Cut", End: "Ctrl+X"},
			{Label: "Copy", End: "Ctrl+C"},
			{Label: "Paste", End: "Ctrl+V", Disabled: true},
			{Separator: true},
			{Label: "Share", Items: []ItemSpec{
				{Label: "Email"},
				{Label: "Link", Exec: "echo link copied"},
			}},
		},
	}
}

// BuiltinMenus returns all built-in menus
func BuiltinMenus() []MenuSpec {
	return []MenuSpec{
		EditorMenu(),
		ContextMenu(),
	}
}

// Builtin looks up a built-in menu by name.
func Builtin(name string) (MenuSpec, bool) {
	for _, s := range BuiltinMenus() {
		if s.Name == name {
			return s, true
		}
	}
	return MenuSpec{}, false
}
