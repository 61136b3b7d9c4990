package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/toast/internal/core/notify"
)

type keyMap struct {
	Success key.Binding
	Error   key.Binding
	Warning key.Binding
	Info    key.Binding
	Events  key.Binding
	Quit    key.Binding

	Submit     key.Binding
	Cancel     key.Binding
	Persistent key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Success: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success")),
		Error:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		Warning: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning")),
		Info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Events:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "demo events")),
		Quit:    key.NewBinding(key.WithKeys("q", keyCtrlC), key.WithHelp("q", "quit")),

		Submit:     key.NewBinding(key.WithKeys(keyEnter), key.WithHelp("enter", "send")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Persistent: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "toggle persistent")),
	}
}

// composeKind maps a compose binding to the kind it creates.
func (k keyMap) composeKind(s string) (notify.Kind, bool) {
	switch {
	case matchesString(s, k.Success):
		return notify.KindSuccess, true
	case matchesString(s, k.Error):
		return notify.KindError, true
	case matchesString(s, k.Warning):
		return notify.KindWarning, true
	case matchesString(s, k.Info):
		return notify.KindInfo, true
	}
	return "", false
}

func (k keyMap) pageHelp() []key.Binding {
	return []key.Binding{k.Success, k.Error, k.Warning, k.Info, k.Events, k.Quit}
}

func (k keyMap) composeHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Persistent, k.Cancel}
}

func matchesString(s string, b key.Binding) bool {
	for _, k := range b.Keys() {
		if k == s {
			return true
		}
	}
	return false
}
