package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the browser key bindings.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	BiggerPage   key.Binding
	SmallerPage  key.Binding
	Search       key.Binding
	Versions     key.Binding
	Arches       key.Binding
	Statuses     key.Binding
	ClearFilters key.Binding
	Delete       key.Binding
	Confirm      key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPage:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		PrevPage:     key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
		BiggerPage:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more per page")),
		SmallerPage:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "fewer per page")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Versions:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "versions")),
		Arches:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "architectures")),
		Statuses:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "statuses")),
		ClearFilters: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Delete:       key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Confirm:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Versions, k.Arches, k.Statuses, k.NextPage, k.PrevPage, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.BiggerPage, k.SmallerPage, k.Refresh},
		{k.Search, k.Versions, k.Arches, k.Statuses, k.ClearFilters},
		{k.Delete, k.Confirm, k.Help, k.Quit},
	}
}
