package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	auditor *Auditor
	wg      sync.WaitGroup
}

// NewService creates a new audit service. A nil auditor disables payload files.
func NewService(repo *audit.Repository, auditor *Auditor) *Service {
	return &Service{repo: repo, auditor: auditor}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			zap.L().Error("failed to log audit event",
				zap.String("action", event.Action),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogCreate records the creation of an entity. When payload is non-nil and
// an auditor is configured, the payload is saved alongside the event.
func (s *Service) LogCreate(entityType, entityID, description string, payload any) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusSuccess,
	}

	if payload != nil && s.auditor.Enabled() {
		filename, err := s.auditor.SaveJSON(payload)
		if err != nil {
			zap.L().Warn("failed to save audit payload", zap.String("entity_type", entityType), zap.Error(err))
		} else {
			event.PayloadFile = filename
		}
	}

	s.LogAsync(event)
}

// LogUpdate records a full or partial update of an entity.
func (s *Service) LogUpdate(entityType, entityID, action, description string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventUpdate,
		Action:      entityType + "_" + action,
		Description: truncate(description, 500),
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(entityType, entityID, entityName string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: truncate("Deleted "+entityType+": "+entityName, 500),
		EntityType:  entityType,
		EntityID:    entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogPurge records a purge run. It is written synchronously because it
// runs inside a task worker.
func (s *Service) LogPurge(description string, err error) error {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventPurge,
		Action:      "author_purge",
		Description: truncate(description, 500),
		EntityType:  "author",
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	return s.repo.LogEvent(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(entityType string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(entityType, limit, offset)
}

// GetEventsForEntity retrieves the history of one entity.
func (s *Service) GetEventsForEntity(entityType, entityID string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(entityType, entityID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
