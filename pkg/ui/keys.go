package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vanderheijden86/menuwork/pkg/menu"
)

// KeyMap binds terminal keys to menu actions.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	Activate key.Binding
	Tab      key.Binding
	Blur     key.Binding
	Outline  key.Binding
	Help     key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "close")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "open")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "activate")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus menu")),
		Blur:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave")),
		Outline:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outline")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// binding returns the binding for a config action name.
func (k *KeyMap) binding(action string) *key.Binding {
	switch action {
	case "up":
		return &k.Up
	case "down":
		return &k.Down
	case "left":
		return &k.Left
	case "right":
		return &k.Right
	case "home":
		return &k.Home
	case "end":
		return &k.End
	case "activate":
		return &k.Activate
	case "tab":
		return &k.Tab
	case "blur":
		return &k.Blur
	case "outline":
		return &k.Outline
	case "help":
		return &k.Help
	case "copy":
		return &k.Copy
	case "quit":
		return &k.Quit
	}
	return nil
}

// WithOverrides replaces the keys of the named actions. The help text keeps
// its description and shows the new keys.
func (k KeyMap) WithOverrides(overrides map[string][]string) (KeyMap, error) {
	for action, keys := range overrides {
		b := k.binding(action)
		if b == nil {
			return k, fmt.Errorf("unknown key action %q", action)
		}
		if len(keys) == 0 {
			b.SetEnabled(false)
			continue
		}
		desc := b.Help().Desc
		*b = key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
	}
	return k, nil
}

// MenuKey translates a key message string into a menu key. Arrow bindings
// are reported as physical arrows; the menu swaps them for RTL itself.
func (k KeyMap) MenuKey(msg string) menu.Key {
	switch {
	case matches(k.Up, msg):
		return menu.KeyUp
	case matches(k.Down, msg):
		return menu.KeyDown
	case matches(k.Left, msg):
		return menu.KeyLeft
	case matches(k.Right, msg):
		return menu.KeyRight
	case matches(k.Home, msg):
		return menu.KeyHome
	case matches(k.End, msg):
		return menu.KeyEnd
	case matches(k.Activate, msg):
		if msg == " " {
			return menu.KeySpace
		}
		return menu.KeyEnter
	}
	return menu.KeyNone
}

func matches(b key.Binding, msg string) bool {
	if !b.Enabled() {
		return false
	}
	for _, s := range b.Keys() {
		if s == msg {
			return true
		}
	}
	return false
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Right, k.Activate, k.Tab, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Left, k.Right, k.Activate},
		{k.Tab, k.Blur, k.Outline, k.Copy, k.Help, k.Quit},
	}
}
