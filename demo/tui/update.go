package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())
	case StatusUpdateMsg:
		return m.handleStatus(msg), nil
	case StartDiscoverMsg:
		if msg.Err != nil {
			m.Err = msg.Err
		}
		return m, pollStatus(m.Client)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "d", "D":
		if m.Connected && !m.State.Running() {
			m.Err = nil
			return m, triggerDiscover(m.Client, m.Count)
		}
	}
	return m, nil
}

// handleStatus syncs the model with a polled status
func (m Model) handleStatus(msg StatusUpdateMsg) Model {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m
	}
	m.Connected = true
	m.State = msg.Status.State
	m.Logs = msg.Status.Logs
	m.Result = msg.Status.LastResult
	if msg.Status.Error != "" {
		m.Err = errors.New(msg.Status.Error)
	}
	return m
}
