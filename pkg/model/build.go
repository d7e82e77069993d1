package model

import "github.com/vanderheijden86/menuwork/pkg/menu"

// Build turns a resolved spec into a live menu tree. Items still carrying a
// ref are built from the named submenu on the fly; callers that need cycle
// checks resolve the spec first.
func Build(s *MenuSpec) *menu.Menu {
	return menu.New(BuildChildren(s, s.Items)...)
}

// BuildChildren builds the elements for items. Each item carries a copy of
// its ItemSpec as Data.
func BuildChildren(s *MenuSpec, items []ItemSpec) []menu.Element {
	return buildChildren(s, items, map[string]bool{})
}

func buildChildren(s *MenuSpec, items []ItemSpec, expanding map[string]bool) []menu.Element {
	out := make([]menu.Element, 0, len(items))
	for _, spec := range items {
		if spec.Separator {
			out = append(out, menu.NewDivider())
			continue
		}
		role, ok := menu.ParseRole(spec.Role)
		if !ok {
			role = menu.RoleMenuItem
		}
		data := spec
		data.Items = nil
		opts := []menu.ItemOption{
			menu.WithRole(role),
			menu.WithStart(spec.Start),
			menu.WithEnd(spec.End),
			menu.WithDisabled(spec.Disabled),
			menu.WithChecked(spec.Checked),
			menu.WithData(&data),
		}
		if spec.ID != "" {
			opts = append(opts, menu.WithID(spec.ID))
		}
		children := spec.Items
		if spec.Ref != "" && s != nil && !expanding[spec.Ref] {
			if sub, ok := s.Menus[spec.Ref]; ok {
				children = sub.Items
			}
		}
		if len(children) > 0 {
			if spec.Ref != "" {
				expanding[spec.Ref] = true
			}
			opts = append(opts, menu.WithSubmenu(menu.New(buildChildren(s, children, expanding)...)))
			delete(expanding, spec.Ref)
		}
		out = append(out, menu.NewItem(spec.Label, opts...))
	}
	return out
}

// SpecOf returns the ItemSpec an item was built from, if any.
func SpecOf(it *menu.Item) (*ItemSpec, bool) {
	if it == nil {
		return nil, false
	}
	s, ok := it.Data().(*ItemSpec)
	return s, ok
}
