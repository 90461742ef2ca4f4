package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding. Views match against it with key.Matches and
// the help overlay is generated from it.
type keyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	Open   key.Binding
	New    key.Binding
	Delete key.Binding
	Reload key.Binding

	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit:       bind("e/ctrl+c", "Quit", "ctrl+c", "e"),
		ForceQuit:  bind("ctrl+c", "Quit", "ctrl+c"),
		Help:       bind("h/?", "Toggle help", "h", "?"),
		CycleTheme: bind("T", "Cycle theme", "T"),
		Escape:     bind("esc", "Back / cancel", "esc"),

		Open:   bind("enter", "Show details", "enter"),
		New:    bind("n", "New car", "n", "a"),
		Delete: bind("d", "Delete car", "d", "x"),
		Reload: bind("r", "Reload / retry", "r"),

		Up:           bind("k/up", "Move up", "k", "up"),
		Down:         bind("j/down", "Move down", "j", "down"),
		Top:          bind("g", "Go to top", "g", "home"),
		Bottom:       bind("G", "Go to bottom", "G", "end"),
		HalfPageUp:   bind("ctrl+u", "Half page up", "ctrl+u"),
		HalfPageDown: bind("ctrl+d", "Half page down", "ctrl+d"),

		NextField: bind("tab/enter", "Next field", "tab", "down"),
		PrevField: bind("shift+tab", "Previous field", "shift+tab", "up"),
		Submit:    bind("ctrl+s", "Submit", "ctrl+s"),

		Confirm: bind("y/enter", "Confirm delete", "y", "enter"),
		Cancel:  bind("n/esc", "Cancel", "n", "esc"),
	}
}

type helpGroup struct {
	title    string
	bindings []key.Binding
}

// helpGroups lists the bindings shown in the help overlay, by context.
func (k keyMap) helpGroups() []helpGroup {
	return []helpGroup{
		{"Catalog", []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp, k.Open, k.New, k.Delete, k.Reload}},
		{"Details", []key.Binding{k.Escape, k.Reload, k.Delete}},
		{"New car", []key.Binding{k.NextField, k.PrevField, k.Submit, k.Escape}},
		{"Delete confirmation", []key.Binding{k.Confirm, k.Cancel}},
		{"General", []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
}
