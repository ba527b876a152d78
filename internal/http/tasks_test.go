package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksController(t *testing.T) {
	queue := &mockTaskQueue{status: backlite.TaskStatusSuccess}
	maintenance := &mockMaintenance{ids: []string{"purge-1", "cleanup-1"}}
	s := setupTestServer(t, false, func(cfg *RouterConfig) {
		cfg.TaskQueue = queue
		cfg.Maintenance = maintenance
	})

	t.Run("lists task types", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/tasks/types", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "purge_deleted_authors")
		assert.Contains(t, w.Body.String(), "cleanup_audit_events")
	})

	t.Run("runs maintenance", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/tasks/maintenance/run", "")

		require.Equal(t, http.StatusAccepted, w.Code)
		body := decode[map[string]any](t, w)
		assert.Equal(t, []any{"purge-1", "cleanup-1"}, body["task_ids"])
	})

	t.Run("reports task status", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/tasks/abc", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"abc","status":"success"}`, w.Body.String())
	})

	t.Run("status failure is 500", func(t *testing.T) {
		queue.err = errors.New("queue closed")
		defer func() { queue.err = nil }()

		w := s.do(http.MethodGet, "/api/tasks/abc", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("maintenance failure is 500", func(t *testing.T) {
		maintenance.err = errors.New("enqueue failed")
		defer func() { maintenance.err = nil }()

		w := s.do(http.MethodPost, "/api/tasks/maintenance/run", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTasksController_Disabled(t *testing.T) {
	s := setupTestServer(t, false, func(cfg *RouterConfig) {
		cfg.TaskQueue = &mockTaskQueue{}
	})

	w := s.do(http.MethodPost, "/api/tasks/maintenance/run", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTasksRoutes_NotRegisteredWithoutQueue(t *testing.T) {
	s := setupTestServer(t, false)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/tasks/types", "").Code)
}

func TestTaskStatusToString(t *testing.T) {
	tests := []struct {
		status backlite.TaskStatus
		want   string
	}{
		{backlite.TaskStatusPending, "pending"},
		{backlite.TaskStatusRunning, "running"},
		{backlite.TaskStatusSuccess, "success"},
		{backlite.TaskStatusFailure, "failure"},
		{backlite.TaskStatusNotFound, "not_found"},
		{backlite.TaskStatus(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, taskStatusToString(tt.status))
	}
}
