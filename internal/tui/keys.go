package tui

import "github.com/charmbracelet/bubbles/key"

// listKeys holds key bindings for the contact list
type listKeys struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Clear  key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Export key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func newListKeys() listKeys {
	return listKeys{
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Export: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy email")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the list bindings for the help bar
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.Add, k.Edit, k.Delete, k.Export, k.Copy, k.Quit}
}

// FullHelp returns the list bindings grouped for expanded help
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Clear},
		{k.Add, k.Edit, k.Delete},
		{k.Export, k.Copy, k.Quit},
	}
}

// fieldKeys holds key bindings shared by the add form and the editor
type fieldKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func newFieldKeys() fieldKeys {
	return fieldKeys{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "prev")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp returns the field bindings for the help bar
func (k fieldKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Save, k.Cancel}
}

// FullHelp returns the field bindings grouped for expanded help
func (k fieldKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Save, k.Cancel}}
}
