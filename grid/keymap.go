package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the grid key bindings.
//
// Bindings must be portable across terminals: most terminals cannot report
// ctrl+shift combinations, so those get an alt fallback.
type KeyMap struct {
	Up, Down, Left, Right                     key.Binding
	ShiftUp, ShiftDown, ShiftLeft, ShiftRight key.Binding
	PageUp, PageDown                          key.Binding
	Home, End                                 key.Binding
	First, Last                               key.Binding

	SelectAll     key.Binding
	Copy          key.Binding
	CopyWorksheet key.Binding
	Paste         key.Binding

	Edit      key.Binding
	Confirm   key.Binding
	Next      key.Binding
	Prev      key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Toggle    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),

		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend down")),
		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "extend left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "extend right")),

		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "row start")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "row end")),
		First:    key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "first cell")),
		Last:     key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "last cell")),

		SelectAll:     key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Copy:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		CopyWorksheet: key.NewBinding(key.WithKeys("ctrl+shift+c", "alt+c"), key.WithHelp("alt+c", "copy sheet")),
		Paste:         key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Edit:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "edit")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous cell")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "clear")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
	}
}

func (k KeyMap) isZero() bool {
	return len(k.Up.Keys()) == 0 && len(k.Down.Keys()) == 0 && len(k.Confirm.Keys()) == 0
}

// Binding returns the binding named name (as used in config files) and
// whether it exists.
func (k *KeyMap) Binding(name string) (*key.Binding, bool) {
	switch name {
	case "up":
		return &k.Up, true
	case "down":
		return &k.Down, true
	case "left":
		return &k.Left, true
	case "right":
		return &k.Right, true
	case "shift_up":
		return &k.ShiftUp, true
	case "shift_down":
		return &k.ShiftDown, true
	case "shift_left":
		return &k.ShiftLeft, true
	case "shift_right":
		return &k.ShiftRight, true
	case "page_up":
		return &k.PageUp, true
	case "page_down":
		return &k.PageDown, true
	case "home":
		return &k.Home, true
	case "end":
		return &k.End, true
	case "first":
		return &k.First, true
	case "last":
		return &k.Last, true
	case "select_all":
		return &k.SelectAll, true
	case "copy":
		return &k.Copy, true
	case "copy_worksheet":
		return &k.CopyWorksheet, true
	case "paste":
		return &k.Paste, true
	case "edit":
		return &k.Edit, true
	case "confirm":
		return &k.Confirm, true
	case "next":
		return &k.Next, true
	case "prev":
		return &k.Prev, true
	case "cancel":
		return &k.Cancel, true
	case "backspace":
		return &k.Backspace, true
	case "delete":
		return &k.Delete, true
	case "toggle":
		return &k.Toggle, true
	default:
		return nil, false
	}
}
