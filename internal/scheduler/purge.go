package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/tasks"
)

// TaskEnqueuer saves a task for the worker pool.
type TaskEnqueuer interface {
	Enqueue(task backlite.Task) (string, error)
}

// PurgeConfig controls the maintenance schedule.
type PurgeConfig struct {
	Schedule           string        // standard five-field cron expression
	Retention          time.Duration // age of soft-deleted authors before purge
	AuditRetentionDays int
}

// PurgeScheduler periodically enqueues the purge of soft-deleted authors and
// the cleanup of old audit events. The work itself runs on the task queue.
type PurgeScheduler struct {
	enqueuer TaskEnqueuer
	config   PurgeConfig
	logger   *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewPurgeScheduler creates a new scheduler instance
func NewPurgeScheduler(enqueuer TaskEnqueuer, cfg PurgeConfig, logger *zap.Logger) *PurgeScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurgeScheduler{
		enqueuer: enqueuer,
		config:   cfg,
		logger:   logger.Named("scheduler"),
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start registers the job and begins the cron loop. It stops when ctx is done.
func (s *PurgeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		if _, err := s.RunNow(); err != nil {
			s.logger.Error("scheduled purge failed to enqueue", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("purge scheduler started",
		zap.String("schedule", s.config.Schedule),
		zap.Time("next_run", s.cron.Entry(entryID).Next),
	)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *PurgeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Wait for a job that is enqueueing right now
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.logger.Info("purge scheduler stopped")
}

// IsRunning reports whether the cron loop is active.
func (s *PurgeScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the next scheduled run, or the zero time when stopped.
func (s *PurgeScheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// RunNow enqueues one purge and one audit cleanup and returns their task ids.
func (s *PurgeScheduler) RunNow() ([]string, error) {
	purgeID, err := s.enqueuer.Enqueue(tasks.PurgeDeletedAuthorsTask{Retention: s.config.Retention})
	if err != nil {
		return nil, err
	}
	cleanupID, err := s.enqueuer.Enqueue(tasks.CleanupAuditEventsTask{RetentionDays: s.config.AuditRetentionDays})
	if err != nil {
		return []string{purgeID}, err
	}

	s.logger.Info("maintenance enqueued",
		zap.String("purge_task", purgeID),
		zap.String("cleanup_task", cleanupID),
	)
	return []string{purgeID, cleanupID}, nil
}
