// Package scheduler wires the automation jobs onto cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-edge/internal/service"
)

const dateLayout = "2006-01-02"

// Scheduler manages the recurring analytics jobs: the morning schedule
// update, the pre-game value scan, the post-game settlement pass, and the
// weekly historical backfill.
type Scheduler struct {
	cron            *cron.Cron
	ingestionSvc    *service.IngestionService
	profileBuilder  *service.ProfileBuilder
	scanner         *service.ValueScanner
	validationSvc   *service.ValidationService
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
	backfillDays    int
}

// NewScheduler creates a new scheduler
func NewScheduler(
	ingestionSvc *service.IngestionService,
	profileBuilder *service.ProfileBuilder,
	scanner *service.ValueScanner,
	validationSvc *service.ValidationService,
	backfillDays int,
	logger *logrus.Logger,
) *Scheduler {
	if backfillDays <= 0 {
		backfillDays = 7
	}

	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		ingestionSvc:    ingestionSvc,
		profileBuilder:  profileBuilder,
		scanner:         scanner,
		validationSvc:   validationSvc,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
		backfillDays:    backfillDays,
	}
}

// ScheduleMorningUpdate schedules the daily schedule pull and profile
// rebuild that precedes any scanning.
func (s *Scheduler) ScheduleMorningUpdate(cronExpression string) error {
	return s.addJob("morning_update", cronExpression, func(ctx context.Context) {
		endDate := time.Now().UTC()
		startDate := endDate.Add(-48 * time.Hour)

		stats, err := s.ingestionSvc.IngestDateRange(ctx, startDate, endDate)
		if err != nil {
			s.logger.WithError(err).Error("Morning schedule update failed")
			return
		}
		s.logger.Infof("Morning schedule update completed: %s", stats.String())

		if _, err := s.profileBuilder.RebuildProfiles(ctx); err != nil {
			s.logger.WithError(err).Error("Morning profile rebuild failed")
		}
	})
}

// SchedulePreGameScan schedules the value scan over the current moneyline
// board.
func (s *Scheduler) SchedulePreGameScan(cronExpression string) error {
	return s.addJob("pre_game_scan", cronExpression, func(ctx context.Context) {
		bets, err := s.scanner.ScanSlate(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Pre-game value scan failed")
			return
		}
		s.logger.WithField("value_bets", len(bets)).Info("Pre-game value scan completed")
	})
}

// SchedulePostGameSettle schedules the settlement pass over open
// predictions.
func (s *Scheduler) SchedulePostGameSettle(cronExpression string) error {
	return s.addJob("post_game_settle", cronExpression, func(ctx context.Context) {
		summary, err := s.validationSvc.SettleOpenPredictions(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Post-game settlement failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"settled":  summary.Settled,
			"correct":  summary.Correct,
			"pending":  summary.Pending,
			"accuracy": summary.Accuracy,
		}).Info("Post-game settlement completed")
	})
}

// ScheduleWeeklyBackfill schedules a deeper historical re-sync to repair any
// gaps the daily pulls missed.
func (s *Scheduler) ScheduleWeeklyBackfill(cronExpression string) error {
	return s.addJob("weekly_backfill", cronExpression, func(ctx context.Context) {
		endDate := time.Now().UTC()
		startDate := endDate.AddDate(0, 0, -s.backfillDays)

		s.logger.Infof("Starting weekly backfill from %s to %s",
			startDate.Format(dateLayout), endDate.Format(dateLayout))

		stats, err := s.ingestionSvc.IngestDateRange(ctx, startDate, endDate)
		if err != nil {
			s.logger.WithError(err).Error("Weekly backfill failed")
			return
		}
		s.logger.Infof("Weekly backfill completed: %s", stats.String())

		if _, err := s.profileBuilder.RebuildProfiles(ctx); err != nil {
			s.logger.WithError(err).Error("Backfill profile rebuild failed")
		}
	})
}

// addJob registers a named job under a cron expression.
func (s *Scheduler) addJob(name, cronExpression string, run func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Hour)
		defer cancel()
		run(ctx)
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"job":  name,
		"cron": cronExpression,
	}).Info("Scheduled job")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out waiting for running jobs")
	}

	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
