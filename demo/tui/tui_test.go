package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"topicbot/orchestrator"
	"topicbot/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestClientStartAndStatus(t *testing.T) {
	var gotCount int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/discover":
			var req types.DiscoverRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			gotCount = req.Count
			w.WriteHeader(http.StatusAccepted)
		case "/api/status":
			_ = json.NewEncoder(w).Encode(orchestrator.StatusResponse{State: orchestrator.StateRanking})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Start(4); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if gotCount != 4 {
		t.Errorf("server received count %d, want 4", gotCount)
	}

	status, err := c.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.State != orchestrator.StateRanking {
		t.Errorf("state = %s", status.State)
	}
}

func TestClientStartConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusConflict)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Start(3); err == nil {
		t.Fatal("expected an error for 409")
	}
}

func TestModelSyncsStatus(t *testing.T) {
	m := NewModel("http://unused", 3)

	updated, _ := m.Update(StatusUpdateMsg{Status: &orchestrator.StatusResponse{
		State: orchestrator.StateComplete,
		LastResult: &orchestrator.Result{
			Topics: []types.ScoredTopic{{Keyword: "Rust async", Lang: "en", Category: "tech", Score: 0.9, SourceFeed: "HN"}},
		},
	}})
	m = updated.(Model)

	if !m.Connected || m.State != orchestrator.StateComplete {
		t.Fatalf("model not synced: connected=%v state=%s", m.Connected, m.State)
	}
	if view := m.View(); !strings.Contains(view, "Rust async") {
		t.Errorf("view does not show the selected topic:\n%s", view)
	}

	updated, _ = m.Update(StatusUpdateMsg{Err: errors.New("refused")})
	m = updated.(Model)
	if m.Connected {
		t.Error("a failed poll should mark the model disconnected")
	}
}

func TestDiscoverKeyIgnoredWhileRunning(t *testing.T) {
	m := NewModel("http://unused", 3)
	m.Connected = true
	m.State = orchestrator.StateFetching

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd != nil {
		t.Error("expected no command while a run is in progress")
	}
}

func TestScoreStyleBands(t *testing.T) {
	tests := []struct {
		score float64
		want  lipgloss.TerminalColor
	}{
		{0.95, good},
		{0.5, accent},
		{0.1, inkMuted},
	}
	for _, tt := range tests {
		if got := scoreStyle(tt.score).GetForeground(); got != tt.want {
			t.Errorf("scoreStyle(%v) foreground = %v; want %v", tt.score, got, tt.want)
		}
	}
}
