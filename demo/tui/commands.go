package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// pollStatus creates a command to poll the run status
func pollStatus(client *Client) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		return StatusUpdateMsg{
			Status: status,
			Err:    err,
		}
	}
}

// triggerDiscover creates a command to start a run
func triggerDiscover(client *Client, count int) tea.Cmd {
	return func() tea.Msg {
		return StartDiscoverMsg{Err: client.Start(count)}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
