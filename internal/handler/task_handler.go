package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/task_management_sample/internal/domain"
	"github.com/locvowork/task_management_sample/internal/logger"
	"github.com/locvowork/task_management_sample/internal/service"
	"github.com/locvowork/task_management_sample/internal/service/serviceutils"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// AddTaskFromChatHandler creates a task from a chat message payload.
func (h *TaskHandler) AddTaskFromChatHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	task, err := taskFromChat(body)
	if err != nil {
		return clientError(c, err)
	}

	created, err := h.svc.Create(c.Request().Context(), task)
	if err != nil {
		return h.internalError(c, "Failed to add task", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Task added from chat message.",
		map[string]string{"task_id": created.ID.String()})
}

// GetTasksByNameHandler lists tasks whose assignee equals the given name.
func (h *TaskHandler) GetTasksByNameHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	assignee := body.text(assigneeKeys...)
	if assignee == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing asignee name.", nil)
	}

	tasks, err := h.svc.ListByAssignee(c.Request().Context(), assignee)
	if err != nil {
		return h.internalError(c, "Failed to list tasks", err)
	}
	return c.JSON(http.StatusOK, service.FormatAll(tasks, service.FormatSummary))
}

// UpdateTaskStatusHandler sets the status of the task with the given id.
func (h *TaskHandler) UpdateTaskStatusHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	rawID, status := body.text("task_id"), body.text("status")
	if rawID == "" || status == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing task_id or status.", nil)
	}
	id, err := parseTaskID(rawID)
	if err != nil {
		return clientError(c, err)
	}

	found, err := h.svc.UpdateStatusByID(c.Request().Context(), id, status)
	if err != nil {
		return h.internalError(c, "Failed to update task", err)
	}
	if !found {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Task not found.", nil)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, fmt.Sprintf("Task status updated to '%s'.", status), nil)
}

// UpdateTaskStatusByNameHandler sets the status of the first task matching
// an assignee and task name exactly.
func (h *TaskHandler) UpdateTaskStatusByNameHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	assignee := body.text(assigneeKeys...)
	name := body.text("task", "task_name")
	status := body.text("status")
	if assignee == "" || name == "" || status == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing asignee, task, or status.", nil)
	}

	found, err := h.svc.UpdateStatusByAssigneeAndName(c.Request().Context(), assignee, name, status)
	if err != nil {
		return h.internalError(c, "Failed to update task", err)
	}
	if !found {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Task not found for given asignee and task name.", nil)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, fmt.Sprintf("Task '%s' status updated to '%s'.", name, status), nil)
}

// UpdateTaskStatusByIDHandler replaces every field of the task with the
// given id.
func (h *TaskHandler) UpdateTaskStatusByIDHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	rawID := body.text("task_id")
	if rawID == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing task_id.", nil)
	}
	id, err := parseTaskID(rawID)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), nil)
	}
	task, err := taskReplacement(body)
	if err != nil {
		return clientError(c, err)
	}

	found, err := h.svc.ReplaceByID(c.Request().Context(), id, task)
	if err != nil {
		return h.internalError(c, "Failed to update task", err)
	}
	if !found {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Task not found for given id.", nil)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, fmt.Sprintf("Task '%s' updated successfully.", task.Name), nil)
}

// GetTasksAssignedToMeHandler lists tasks whose assignee contains the query.
func (h *TaskHandler) GetTasksAssignedToMeHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	assignee := body.text(assigneeKeys...)
	if assignee == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing asignee name.", nil)
	}

	tasks, err := h.svc.AssignedTo(c.Request().Context(), assignee)
	if err != nil {
		return h.internalError(c, "Failed to list tasks", err)
	}
	return c.JSON(http.StatusOK, service.FormatAll(tasks, service.FormatDetail))
}

// GetTasksAssignedByMeHandler lists tasks whose assigner and the query
// contain one another.
func (h *TaskHandler) GetTasksAssignedByMeHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	assigner := body.text("assigner", "asigner")
	if assigner == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing assigner name.", nil)
	}

	tasks, err := h.svc.AssignedBy(c.Request().Context(), assigner)
	if err != nil {
		return h.internalError(c, "Failed to list tasks", err)
	}
	return c.JSON(http.StatusOK, service.FormatAll(tasks, service.FormatDetail))
}

// GetTaskSummaryHandler returns status counts for the dashboard.
func (h *TaskHandler) GetTaskSummaryHandler(c echo.Context) error {
	body, err := bindPayload(c)
	if err != nil {
		return badBody(c, err)
	}
	user := body.text("user")
	if user == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Missing user.", nil)
	}

	summary, err := h.svc.Summary(c.Request().Context(), user)
	if err != nil {
		return h.internalError(c, "Failed to summarise tasks", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", summary)
}

func HealthHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", nil)
}

func (h *TaskHandler) internalError(c echo.Context, msg string, err error) error {
	logger.ErrorLog(c.Request().Context(), "%s: %v", msg, err)
	return serviceutils.ResponseError(c, http.StatusInternalServerError, msg, nil)
}

func clientError(c echo.Context, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return serviceutils.ResponseError(c, http.StatusBadRequest, ve.Message, nil)
	}
	return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), nil)
}

func badBody(c echo.Context, err error) error {
	logger.WarnLog(c.Request().Context(), "Rejected request body on %s: %v", c.Path(), err)
	return serviceutils.ResponseError(c, http.StatusBadRequest, "invalid request body", nil)
}
