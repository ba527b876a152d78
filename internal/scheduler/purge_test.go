package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mrlokans/library/internal/tasks"
)

type mockEnqueuer struct {
	mu     sync.Mutex
	tasks  []backlite.Task
	failOn string
}

func (m *mockEnqueuer) Enqueue(task backlite.Task) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.Config().Name == m.failOn {
		return "", errors.New("queue unavailable")
	}
	m.tasks = append(m.tasks, task)
	return fmt.Sprintf("task-%d", len(m.tasks)), nil
}

func TestPurgeScheduler_RunNow(t *testing.T) {
	enq := &mockEnqueuer{}
	s := NewPurgeScheduler(enq, PurgeConfig{
		Schedule:           "0 3 * * *",
		Retention:          48 * time.Hour,
		AuditRetentionDays: 7,
	}, zaptest.NewLogger(t))

	ids, err := s.RunNow()
	require.NoError(t, err)
	assert.Equal(t, []string{"task-1", "task-2"}, ids)

	require.Len(t, enq.tasks, 2)
	assert.Equal(t, tasks.PurgeDeletedAuthorsTask{Retention: 48 * time.Hour}, enq.tasks[0])
	assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 7}, enq.tasks[1])
}

func TestPurgeScheduler_RunNowFailure(t *testing.T) {
	enq := &mockEnqueuer{failOn: "purge_deleted_authors"}
	s := NewPurgeScheduler(enq, PurgeConfig{Schedule: "0 3 * * *"}, nil)

	ids, err := s.RunNow()
	assert.Error(t, err)
	assert.Empty(t, ids)

	enq = &mockEnqueuer{failOn: "cleanup_audit_events"}
	s = NewPurgeScheduler(enq, PurgeConfig{Schedule: "0 3 * * *"}, nil)
	ids, err = s.RunNow()
	assert.Error(t, err)
	assert.Equal(t, []string{"task-1"}, ids)
}

func TestPurgeScheduler_StartStop(t *testing.T) {
	s := NewPurgeScheduler(&mockEnqueuer{}, PurgeConfig{Schedule: "0 3 * * *"}, zaptest.NewLogger(t))

	assert.True(t, s.NextRun().IsZero())
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	next := s.NextRun()
	assert.False(t, next.IsZero())
	assert.Equal(t, 3, next.Hour())

	require.NoError(t, s.Start(context.Background()), "second start is a no-op")

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestPurgeScheduler_StopsWithContext(t *testing.T) {
	s := NewPurgeScheduler(&mockEnqueuer{}, PurgeConfig{Schedule: "*/5 * * * *"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestPurgeScheduler_InvalidSchedule(t *testing.T) {
	s := NewPurgeScheduler(&mockEnqueuer{}, PurgeConfig{Schedule: "every night"}, nil)
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsRunning())
}
