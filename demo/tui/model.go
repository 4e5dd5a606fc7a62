package tui

import (
	"fmt"
	"strings"

	"topicbot/config"
	"topicbot/orchestrator"

	tea "github.com/charmbracelet/bubbletea"
)

// Model is the TUI client state, synced from the server
type Model struct {
	Client *Client
	Count  int

	State  orchestrator.State
	Logs   []orchestrator.LogEntry
	Result *orchestrator.Result
	Err    error

	Connected bool
}

// NewModel creates a new TUI model
func NewModel(baseURL string, count int) Model {
	return Model{
		Client: NewClient(baseURL),
		Count:  count,
		State:  orchestrator.StateIdle,
		Logs:   make([]orchestrator.LogEntry, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		pollStatus(m.Client),
		tickCmd(),
	)
}

// getStateText returns the banner for the current state
func (m Model) getStateText() string {
	if !m.Connected {
		return failStyle.Render("❌ Not connected to topicbot")
	}

	switch m.State {
	case orchestrator.StateIdle:
		return badgeStyle.Render("👋 Ready to start!")
	case orchestrator.StateFetching:
		return activeStyle.Render("⏳ Fetching feeds...")
	case orchestrator.StateRanking:
		return activeStyle.Render("📈 Ranking entries...")
	case orchestrator.StateSelecting:
		return activeStyle.Render("🔍 Deduplicating and balancing...")
	case orchestrator.StateRecording:
		return activeStyle.Render("📝 Recording history...")
	case orchestrator.StateComplete:
		return badgeStyle.Render("✅ COMPLETE")
	case orchestrator.StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return failStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

// primaryLang is highlighted in the topic list
const primaryLang = config.PrimaryLanguage

// formatResult renders the selected topics
func (m Model) formatResult() string {
	res := m.Result
	var b strings.Builder

	b.WriteString(badgeStyle.Render(fmt.Sprintf("Selected %d topics", len(res.Topics))))
	b.WriteString("\n\n")
	for i, t := range res.Topics {
		b.WriteString(fmt.Sprintf("%d. %s %s %s\n", i+1,
			langStyle(t.Lang, primaryLang).Render("["+t.Lang+"]"),
			categoryTag.Render("["+t.Category+"]"),
			activeStyle.Render(t.Keyword)))
		b.WriteString("   ")
		b.WriteString(scoreStyle(t.Score).Render(fmt.Sprintf("score %.3f", t.Score)))
		b.WriteString(mutedStyle.Render(" from " + t.SourceFeed))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("\nFetched %d | Candidates %d | After dedup %d", res.Fetched, res.Candidates, res.Deduplicated)))
	if res.HistoryError != "" {
		b.WriteString("\n")
		b.WriteString(failStyle.Render("History: " + res.HistoryError))
	}
	return b.String()
}
