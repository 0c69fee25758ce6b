package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-tracker.com/task-tracker/internal/data_models"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
	"task-tracker.com/task-tracker/internal/http/validators"
	"task-tracker.com/task-tracker/internal/services"
)

type Handler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

func NewHandler(taskService *services.TaskService, authService *services.AuthService) *Handler {
	return &Handler{
		taskService: taskService,
		authService: authService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	task, err := h.taskService.CreateTask(
		c.Request().Context(),
		middleware.CallerID(c),
		req.Title,
		req.Description,
		req.Status,
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context(), middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c echo.Context) error {
	id := c.Param("id")
	if err := validators.ValidateTaskID(id); err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id, middleware.CallerID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if err := validators.ValidateTaskID(id); err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	task, err := h.taskService.UpdateTask(
		c.Request().Context(),
		id,
		middleware.CallerID(c),
		services.TaskPatch{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		},
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if err := validators.ValidateTaskID(id); err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id, middleware.CallerID(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
