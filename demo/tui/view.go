package tui

import (
	"strings"

	"topicbot/orchestrator"
)

// maxShownLogs bounds the activity list
const maxShownLogs = 8

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("🤖 Topicbot Discovery"))
	b.WriteString("\n\n")

	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	if len(m.Logs) > 0 {
		b.WriteString(mutedStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		logs := m.Logs
		if len(logs) > maxShownLogs {
			logs = logs[len(logs)-maxShownLogs:]
		}
		for _, entry := range logs {
			b.WriteString(mutedStyle.Render("   " + entry.Timestamp.Format("15:04:05") + " " + entry.Message))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.State == orchestrator.StateComplete && m.Result != nil {
		b.WriteString(resultPanel.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	switch {
	case m.State.Running():
		b.WriteString(mutedStyle.Render(TextFooterRunning))
	case m.State == orchestrator.StateComplete:
		b.WriteString(badgeStyle.Render(TextFooterDone))
	default:
		b.WriteString(mutedStyle.Render(TextFooterIdle))
	}

	return b.String()
}
