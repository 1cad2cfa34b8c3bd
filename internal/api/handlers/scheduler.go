package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marquee/marquee/internal/scheduler"
)

// SchedulerHandler handles scheduler-related API requests.
type SchedulerHandler struct {
	scheduler *scheduler.Scheduler
}

// NewSchedulerHandler creates a new scheduler handler.
func NewSchedulerHandler(sched *scheduler.Scheduler) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: sched,
	}
}

// ListTasks returns all scheduled tasks.
// GET /api/v1/system/tasks
func (h *SchedulerHandler) ListTasks(c echo.Context) error {
	tasks := h.scheduler.ListTasks()
	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns information about a specific task.
// GET /api/v1/system/tasks/:id
func (h *SchedulerHandler) GetTask(c echo.Context) error {
	taskID := c.Param("id")
	task, err := h.scheduler.GetTask(taskID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, task)
}

// RunTask manually triggers a task to run.
// POST /api/v1/system/tasks/:id/run
func (h *SchedulerHandler) RunTask(c echo.Context) error {
	taskID := c.Param("id")
	if err := h.scheduler.RunNow(taskID); err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, scheduler.ErrTaskNotFound):
			status = http.StatusNotFound
		case errors.Is(err, scheduler.ErrTaskRunning):
			status = http.StatusConflict
		}
		return c.JSON(status, map[string]string{
			"error": err.Error(),
		})
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "Task started",
		"taskId":  taskID,
	})
}
