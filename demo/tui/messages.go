package tui

import (
	"time"

	"topicbot/orchestrator"
)

// StatusUpdateMsg carries a polled status
type StatusUpdateMsg struct {
	Status *orchestrator.StatusResponse
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}

// StartDiscoverMsg is sent once a run was requested
type StartDiscoverMsg struct {
	Err error
}
