package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"topicbot/config"
	"topicbot/types"

	"github.com/google/uuid"
)

// State is the discovery run state machine
type State string

const (
	StateIdle      State = "idle"
	StateFetching  State = "fetching"
	StateRanking   State = "ranking"
	StateSelecting State = "selecting"
	StateRecording State = "recording"
	StateComplete  State = "complete"
	StateError     State = "error"
)

// Running reports whether a run is in progress in this state
func (s State) Running() bool {
	switch s {
	case StateFetching, StateRanking, StateSelecting, StateRecording:
		return true
	}
	return false
}

// ErrBusy is returned when a run is requested while one is in progress
var ErrBusy = errors.New("discovery already running")

const maxLogs = 50

// LogEntry is a single status line with timestamp
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// StatusResponse is the JSON body of the status endpoint
type StatusResponse struct {
	State      State      `json:"state"`
	RunID      string     `json:"run_id,omitempty"`
	Logs       []LogEntry `json:"logs"`
	LastResult *Result    `json:"last_result,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Manager serializes discovery runs and tracks their progress
type Manager struct {
	mu sync.RWMutex

	pipeline *Pipeline

	state      State
	runID      string
	logs       []LogEntry
	lastResult *Result
	lastErr    error
}

// NewManager creates a manager around a pipeline
func NewManager(pipeline *Pipeline) *Manager {
	return &Manager{
		pipeline: pipeline,
		state:    StateIdle,
		logs:     make([]LogEntry, 0),
	}
}

// Pipeline returns the managed pipeline
func (m *Manager) Pipeline() *Pipeline { return m.pipeline }

// TryStart claims the manager for a new run and returns its id.
// It returns ErrBusy when a run is already in progress.
func (m *Manager) TryStart() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Running() {
		return "", ErrBusy
	}
	m.runID = uuid.NewString()
	m.state = StateFetching
	m.lastErr = nil
	m.appendLog(fmt.Sprintf("Run %s started", m.runID))
	return m.runID, nil
}

// Run executes a claimed run to completion
func (m *Manager) Run(ctx context.Context, runID string, count int) (*Result, error) {
	res, err := m.pipeline.Discover(ctx, Request{
		RunID:    runID,
		Count:    count,
		Progress: m.progress,
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateError
		m.lastErr = err
		m.appendLog(fmt.Sprintf("Error: %v", err))
		return nil, err
	}
	m.state = StateComplete
	m.lastResult = res
	m.appendLog(fmt.Sprintf("Selected %d topics", len(res.Topics)))
	return res, nil
}

// Discover claims the manager and runs synchronously
func (m *Manager) Discover(ctx context.Context, count int) (*Result, error) {
	runID, err := m.TryStart()
	if err != nil {
		return nil, err
	}
	return m.Run(ctx, runID, count)
}

// Start claims the manager and runs in the background
func (m *Manager) Start(ctx context.Context, count int) (string, error) {
	runID, err := m.TryStart()
	if err != nil {
		return "", err
	}
	go func() {
		_, _ = m.Run(ctx, runID, count)
	}()
	return runID, nil
}

// AddLog adds a log entry
func (m *Manager) AddLog(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendLog(message)
}

// GetState returns the current state
func (m *Manager) GetState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// GetStatus returns a snapshot of the current state
func (m *Manager) GetStatus() StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	resp := StatusResponse{
		State:      m.state,
		RunID:      m.runID,
		Logs:       append([]LogEntry{}, m.logs...),
		LastResult: m.lastResult,
	}
	if m.lastErr != nil {
		resp.Error = m.lastErr.Error()
	}
	return resp
}

func (m *Manager) progress(stage State, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = stage
	m.appendLog(message)
}

// appendLog must be called with mu held
func (m *Manager) appendLog(message string) {
	m.logs = append(m.logs, LogEntry{Timestamp: time.Now(), Message: message})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// HandleRequest serves a queued discovery request. Busy and empty runs are
// logged and swallowed so the request is not redelivered.
func (m *Manager) HandleRequest(ctx context.Context, req *types.DiscoverRequest) error {
	count := req.Count
	if count <= 0 {
		count = config.DefaultCount
	}
	_, err := m.Discover(ctx, count)
	switch {
	case errors.Is(err, ErrBusy):
		m.pipeline.logger.Warn().Int("count", count).Msg("Discovery request dropped: run in progress")
		return nil
	case errors.Is(err, ErrNoTopics):
		m.pipeline.logger.Warn().Msg("Discovery request found no entries")
		return nil
	}
	return err
}
