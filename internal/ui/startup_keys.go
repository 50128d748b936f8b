package ui

import (
	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds seed through the model one rune at a time, as if it
// had been typed. It stops early once the model selects a command or
// cancels.
func ApplyStartupKeys(m *MenuModel, seed string) {
	if m == nil {
		return
	}
	for _, r := range seed {
		if m.quitting {
			return
		}
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}
