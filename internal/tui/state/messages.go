package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// settingsFileChangedMsg is sent when the settings watcher reports a change.
type settingsFileChangedMsg struct{}

// clearStatusMsg clears the status line unless a newer message replaced it.
type clearStatusMsg struct {
	seq int
}

func waitForSettingsChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return settingsFileChangedMsg{}
	}
}

func clearStatusAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
