package menu

import "strings"

// Key is a platform-neutral key command.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyNone:  "none",
	KeyEnter: "enter",
	KeySpace: "space",
	KeyUp:    "up",
	KeyDown:  "down",
	KeyLeft:  "left",
	KeyRight: "right",
	KeyHome:  "home",
	KeyEnd:   "end",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKey maps a key name ("down", "enter", ...) to a Key.
func ParseKey(name string) (Key, bool) {
	if name == " " {
		return KeySpace, true
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for k, s := range keyNames {
		if s == name && k != KeyNone {
			return k, true
		}
	}
	return KeyNone, false
}

// KeyHandler is implemented by elements that take part in key dispatch.
// HandleKey reports whether the key was consumed.
type KeyHandler interface {
	HandleKey(k Key) bool
}

// arrows returns the arrow that opens a submenu in direction d, and the one
// that closes it.
func arrows(d Direction) (open, closeKey Key) {
	if d == RTL {
		return KeyLeft, KeyRight
	}
	return KeyRight, KeyLeft
}
