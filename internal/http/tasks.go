package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue       TaskQueue
	maintenance MaintenanceRunner
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue, maintenance MaintenanceRunner) *TasksController {
	return &TasksController{queue: queue, maintenance: maintenance}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        "purge_deleted_authors",
			Description: "Permanently remove authors deleted longer ago than the retention period",
			Queue:       "purge_deleted_authors",
		},
		{
			Type:        "cleanup_audit_events",
			Description: "Delete audit events older than the retention period",
			Queue:       "cleanup_audit_events",
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// RunMaintenance handles POST /api/tasks/maintenance/run
// Enqueues the purge and audit cleanup tasks immediately.
func (tc *TasksController) RunMaintenance(c *gin.Context) {
	if tc.maintenance == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "maintenance is not enabled"})
		return
	}

	ids, err := tc.maintenance.RunNow()
	if err != nil {
		respondInternalError(c, err, "run maintenance")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success":  true,
		"task_ids": ids,
		"message":  "tasks enqueued",
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.queue == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "task queue is not enabled"})
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
