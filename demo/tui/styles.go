package tui

import (
	"topicbot/config"

	"github.com/charmbracelet/lipgloss"
)

// Topicbot palette: warm tones for the primary language, cool for the rest
var (
	inkStrong = lipgloss.AdaptiveColor{Light: "#1B1B1F", Dark: "#F4F1EA"}
	inkMuted  = lipgloss.AdaptiveColor{Light: "#6B6B75", Dark: "#8A8A94"}
	accent    = lipgloss.Color("#E07A2F")
	good      = lipgloss.Color("#3FA66B")
	bad       = lipgloss.Color("#D8424A")
	warmLang  = lipgloss.Color("#E8577E")
	coolLang  = lipgloss.Color("#3D8FC6")
	frame     = lipgloss.Color("#B7652A")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1).MarginBottom(1)

	activeStyle = lipgloss.NewStyle().Foreground(good)
	failStyle   = lipgloss.NewStyle().Foreground(bad)
	mutedStyle  = lipgloss.NewStyle().Foreground(inkMuted)

	badgeStyle = lipgloss.NewStyle().Bold(true).Foreground(inkStrong).Background(accent).Padding(0, 1)

	resultPanel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(frame).Padding(1, 2)

	categoryTag = lipgloss.NewStyle().Foreground(frame)
)

// langStyle colors a language tag; the primary language is bold
func langStyle(lang, primary string) lipgloss.Style {
	if lang == primary {
		return lipgloss.NewStyle().Bold(true).Foreground(warmLang)
	}
	return lipgloss.NewStyle().Foreground(coolLang)
}

// scoreStyle colors a score by band; anything under the default bar is dimmed
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.7:
		return activeStyle
	case score >= config.DefaultMinScore:
		return lipgloss.NewStyle().Foreground(accent)
	default:
		return mutedStyle
	}
}
