package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"topicbot/orchestrator"

	"github.com/rs/zerolog"
)

type fakeRunner struct {
	calls int
	count int
	err   error
}

func (f *fakeRunner) Discover(ctx context.Context, count int) (*orchestrator.Result, error) {
	f.calls++
	f.count = count
	if f.err != nil {
		return nil, f.err
	}
	return &orchestrator.Result{RunID: "r"}, nil
}

func TestTriggerRunsDiscovery(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"busy", orchestrator.ErrBusy},
		{"failure", errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{err: tt.err}
			s := New(r, 4, zerolog.Nop())
			s.ctx = context.Background()

			s.trigger()

			if r.calls != 1 || r.count != 4 {
				t.Errorf("calls=%d count=%d, want 1 and 4", r.calls, r.count)
			}
		})
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := New(&fakeRunner{}, 3, zerolog.Nop())
	if err := s.Start(context.Background(), "not a schedule"); err == nil {
		t.Fatal("expected an error for an invalid schedule")
	}
}

func TestStartSchedulesNextRun(t *testing.T) {
	s := New(&fakeRunner{}, 3, zerolog.Nop())
	if !s.Next().IsZero() {
		t.Error("Next should be zero before Start")
	}
	if err := s.Start(context.Background(), DefaultSchedule); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	// the cron loop computes Next asynchronously after Start
	deadline := time.Now().Add(2 * time.Second)
	for s.Next().IsZero() {
		if time.Now().After(deadline) {
			t.Fatal("next run was never scheduled")
		}
		time.Sleep(5 * time.Millisecond)
	}
	next := s.Next()
	if next.Hour() != 6 || next.Minute() != 0 {
		t.Errorf("next run at %v, want 06:00", next)
	}
}
