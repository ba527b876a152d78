package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"
)

// DefaultPurgeRetention is used when a task carries no retention.
const DefaultPurgeRetention = 30 * 24 * time.Hour

// DeletedAuthorPurger permanently removes authors soft-deleted before a cutoff.
type DeletedAuthorPurger interface {
	PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeRecorder records the outcome of a purge run.
type PurgeRecorder interface {
	LogPurge(description string, err error) error
}

// PurgeDeletedAuthorsTask removes authors, and their books, that were deleted
// longer than Retention ago.
type PurgeDeletedAuthorsTask struct {
	Retention time.Duration `json:"retention"`
}

// Config returns the queue configuration for purge tasks.
func (t PurgeDeletedAuthorsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "purge_deleted_authors",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PurgeDeletedAuthorsProcessor creates a processor function for PurgeDeletedAuthorsTask.
// recorder may be nil.
func PurgeDeletedAuthorsProcessor(purger DeletedAuthorPurger, recorder PurgeRecorder, logger *zap.Logger) backlite.QueueProcessor[PurgeDeletedAuthorsTask] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task PurgeDeletedAuthorsTask) error {
		if purger == nil {
			return fmt.Errorf("author purger not configured")
		}

		retention := task.Retention
		if retention <= 0 {
			retention = DefaultPurgeRetention
		}
		cutoff := time.Now().Add(-retention)

		purged, err := purger.PurgeDeleted(ctx, cutoff)
		if recorder != nil {
			desc := fmt.Sprintf("Purged %d authors deleted before %s", purged, cutoff.UTC().Format(time.RFC3339))
			if rerr := recorder.LogPurge(desc, err); rerr != nil {
				logger.Warn("failed to record purge", zap.Error(rerr))
			}
		}
		if err != nil {
			return fmt.Errorf("purge deleted authors: %w", err)
		}

		logger.Info("purged deleted authors",
			zap.Int64("purged", purged),
			zap.Duration("retention", retention),
		)
		return nil
	}
}

// NewPurgeDeletedAuthorsQueue creates a backlite queue for purge tasks.
func NewPurgeDeletedAuthorsQueue(purger DeletedAuthorPurger, recorder PurgeRecorder, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(PurgeDeletedAuthorsProcessor(purger, recorder, logger))
}
