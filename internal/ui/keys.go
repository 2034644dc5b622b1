package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	ModeCompact key.Binding
	ModeFull    key.Binding
	ModeDelta   key.Binding
	Refresh     key.Binding
	Diagnostics key.Binding
	Copy        key.Binding
	CycleTheme  key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		ModeCompact: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Compact"),
		),
		ModeFull: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Full"),
		),
		ModeDelta: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Delta Today"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Diagnostics"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy diagnostics"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// helpEntries lists the footer bindings in display order.
func (k keyMap) helpEntries() []key.Binding {
	return []key.Binding{
		k.ModeCompact, k.ModeFull, k.ModeDelta,
		k.Refresh, k.Diagnostics, k.CycleTheme, k.Quit,
	}
}
