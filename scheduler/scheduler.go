package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"topicbot/config"
	"topicbot/orchestrator"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultSchedule runs discovery daily at 06:00 Tokyo time
const DefaultSchedule = "0 6 * * *"

// Runner is the part of orchestrator.Manager the scheduler drives
type Runner interface {
	Discover(ctx context.Context, count int) (*orchestrator.Result, error)
}

// Scheduler triggers discovery runs on a cron schedule
type Scheduler struct {
	runner Runner
	count  int
	cron   *cron.Cron
	logger zerolog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	id     cron.EntryID
}

// New creates a scheduler that selects count topics per run
func New(runner Runner, count int, logger zerolog.Logger) *Scheduler {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		loc = config.JST
	}
	return &Scheduler{
		runner: runner,
		count:  count,
		cron:   cron.New(cron.WithLocation(loc)),
		logger: logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the schedule and starts the cron loop
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	id, err := s.cron.AddFunc(schedule, s.trigger)
	if err != nil {
		s.cancel()
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.id = id
	s.cron.Start()
	s.logger.Info().Str("schedule", schedule).Msg("Cron job started")
	return nil
}

// Next returns the next scheduled run, zero before Start
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.id).Next
}

// Stop halts the cron loop and waits for a running job to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	<-s.cron.Stop().Done()
}

func (s *Scheduler) trigger() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	s.logger.Info().Msg("Cron triggered: starting discovery")
	res, err := s.runner.Discover(ctx, s.count)
	switch {
	case errors.Is(err, orchestrator.ErrBusy):
		s.logger.Warn().Msg("Cron skipped: discovery already running")
	case err != nil:
		s.logger.Error().Err(err).Msg("Cron discovery failed")
	default:
		s.logger.Info().Int("selected", len(res.Topics)).Str("run_id", res.RunID).Msg("Cron discovery complete")
	}
}
