package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/theirongolddev/renobudget/internal/tui/components"
)

type keyMap struct {
	Reset    key.Binding
	NextView key.Binding
	Views    []key.Binding // indexed like components.Tabs
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new estimate")),
		NextView: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next view")),
		Views:    viewBindings(),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// viewBindings binds each tab's shortcut letter and its 1-based position.
func viewBindings() []key.Binding {
	out := make([]key.Binding, len(components.Tabs))
	for i, tab := range components.Tabs {
		k := string(tab.Key)
		out[i] = key.NewBinding(
			key.WithKeys(k, strconv.Itoa(i+1)),
			key.WithHelp(k, strings.ToLower(tab.Name)),
		)
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reset, k.NextView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		append(append([]key.Binding{}, k.Views...), k.NextView),
		{k.Reset, k.Help, k.Quit},
	}
}
