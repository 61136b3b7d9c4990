package toasts

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings the toast stack responds to while toasts are on
// screen.
type KeyMap struct {
	Dismiss    key.Binding
	DismissAll key.Binding
	Next       key.Binding
	Prev       key.Binding
	Copy       key.Binding
}

// DefaultKeyMap returns the default toast bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		DismissAll: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "dismiss all")),
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next toast")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev toast")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.DismissAll, k.Next, k.Copy}
}
