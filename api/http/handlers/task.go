package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ndanilchenko/tasktrack/api/http/presenter"
	"github.com/ndanilchenko/tasktrack/pkg/security/jwt"
	"github.com/ndanilchenko/tasktrack/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

// ownerID resolves the authenticated user bound by the auth middleware.
func ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, _ := c.Locals(jwt.LocalUserID).(string)
	return uuid.Parse(userIDStr)
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// Create adds a task owned by the requester.
// @Summary Create task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   input body createTaskRequest true "task payload"
// @Security BearerAuth
// @Success 201 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Title) == "" {
		return presenter.Error(c, http.StatusBadRequest, "title is required")
	}
	in := task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status, err := task.ParseStatus(*req.Status)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		in.Status = &status
	}
	if req.Priority != nil {
		priority, err := task.ParsePriority(*req.Priority)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		in.Priority = &priority
	}
	t, err := h.uc.Create(c.Context(), uid, in)
	if err != nil {
		var ve task.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create task")
	}
	return presenter.JSON(c, http.StatusCreated, t)
}

// List returns the requester's tasks, optionally filtered.
// @Summary List tasks
// @Tags    tasks
// @Produce json
// @Param   status   query string false "status filter"   Enums(todo, in_progress, done)
// @Param   priority query string false "priority filter" Enums(low, medium, high)
// @Param   search   query string false "substring match over title/description"
// @Security BearerAuth
// @Success 200 {array} task.Task
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	var f task.Filters
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status, err := task.ParseStatus(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		f.Status = &status
	}
	if v := strings.TrimSpace(c.Query("priority")); v != "" {
		priority, err := task.ParsePriority(v)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		f.Priority = &priority
	}
	f.Search = strings.TrimSpace(c.Query("search"))

	tasks, err := h.uc.List(c.Context(), uid, f)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list tasks")
	}
	return presenter.JSON(c, http.StatusOK, tasks)
}

// Stats returns aggregate counts over the requester's tasks.
// @Summary Task statistics
// @Tags    tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} task.Stats
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /tasks/stats [get]
func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	stats, err := h.uc.Stats(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to compute stats")
	}
	return presenter.JSON(c, http.StatusOK, stats)
}

// GetByID returns one task; alien or absent ids are both 404.
// @Summary Get task by ID
// @Tags    tasks
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} task.Task
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "task not found")
	}
	t, err := h.uc.GetByID(c.Context(), uid, id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return presenter.Error(c, http.StatusNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load task")
	}
	return presenter.JSON(c, http.StatusOK, t)
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// Update applies a partial update to an owned task.
// @Summary Update task
// @Tags    tasks
// @Accept  json
// @Produce json
// @Param   id    path string            true "task ID (UUID)"
// @Param   input body updateTaskRequest true "fields to change"
// @Security BearerAuth
// @Success 200 {object} task.Task
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "task not found")
	}
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	in := task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status, err := task.ParseStatus(*req.Status)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		in.Status = &status
	}
	if req.Priority != nil {
		priority, err := task.ParsePriority(*req.Priority)
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		in.Priority = &priority
	}
	t, err := h.uc.Update(c.Context(), uid, id, in)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return presenter.Error(c, http.StatusNotFound, "task not found")
		}
		var ve task.ErrValidation
		if errors.As(err, &ve) {
			return presenter.Error(c, http.StatusBadRequest, ve.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update task")
	}
	return presenter.JSON(c, http.StatusOK, t)
}

// Delete removes an owned task.
// @Summary Delete task
// @Tags    tasks
// @Produce json
// @Param   id path string true "task ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	uid, err := ownerID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "task not found")
	}
	deleted, err := h.uc.Delete(c.Context(), uid, id)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete task")
	}
	if !deleted {
		return presenter.Error(c, http.StatusNotFound, "task not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
