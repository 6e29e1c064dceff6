package state

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	NextFolder    key.Binding
	PrevFolder    key.Binding
	Open          key.Binding
	Back          key.Binding
	Quit          key.Binding
	Sessions      key.Binding
	Search        key.Binding
	MenuArchived  key.Binding
	MoveRowToList key.Binding
	MoveRowToMenu key.Binding
	Archive       key.Binding
	Unarchive     key.Binding
	Compact       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextFolder:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next folder")),
		PrevFolder:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev folder")),
		Open:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:          key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
		Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Sessions:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sessions")),
		Search:        key.NewBinding(key.WithKeys("/", "ctrl+f"), key.WithHelp("/", "search")),
		MenuArchived:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archived")),
		MoveRowToList: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "archive row to list")),
		MoveRowToMenu: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "archive row to menu")),
		Archive:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "archive")),
		Unarchive:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unarchive")),
		Compact:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact")),
	}
}

func hint(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}
