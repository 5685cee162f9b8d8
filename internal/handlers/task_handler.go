package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/models"
	"study-planner/backend/internal/repositories"
	"study-planner/backend/internal/services"
)

// Dashboard defaults for the upcoming-tasks widget.
const (
	defaultUpcomingDays  = 7
	defaultUpcomingLimit = 5
)

// TaskHandler serves the task CRUD and query endpoints.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskHandler creates a new task for the authenticated user.
func (h *TaskHandler) CreateTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.taskService.Create(userID, req)
	if err != nil {
		writeServiceError(c, err, repositories.ErrTaskNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusCreated, models.NewTaskView(*task, h.taskService.Today()))
}

// UpdateTaskHandler applies a partial update to one of the user's tasks.
func (h *TaskHandler) UpdateTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.taskService.Update(userID, id, req)
	if err != nil {
		writeServiceError(c, err, repositories.ErrTaskNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusOK, models.NewTaskView(*task, h.taskService.Today()))
}

// ToggleTaskHandler flips the completion state of one of the user's tasks.
func (h *TaskHandler) ToggleTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Toggle(userID, id)
	if err != nil {
		writeServiceError(c, err, repositories.ErrTaskNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusOK, models.NewTaskView(*task, h.taskService.Today()))
}

// DeleteTaskHandler deletes one of the user's tasks. Missing and foreign ids
// are treated as already deleted.
func (h *TaskHandler) DeleteTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(userID, id); err != nil {
		writeServiceError(c, err, repositories.ErrTaskNotFound, "Task not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTaskHandler returns a single task by id.
func (h *TaskHandler) GetTaskHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(userID, id)
	if err != nil {
		writeServiceError(c, err, repositories.ErrTaskNotFound, "Task not found")
		return
	}
	c.JSON(http.StatusOK, models.NewTaskView(*task, h.taskService.Today()))
}

// GetTasksHandler lists the user's tasks. filter, sort, and order query
// parameters fall back to all/deadline/asc when unrecognized.
func (h *TaskHandler) GetTasksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	q := models.ParseTaskQuery(c.Query("filter"), c.Query("sort"), c.Query("order"))
	tasks, err := h.taskService.List(userID, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, models.NewTaskViews(tasks, h.taskService.Today()))
}

// GetUpcomingTasksHandler lists pending tasks due within the next days
// (default 7), capped (default 5).
func (h *TaskHandler) GetUpcomingTasksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days := queryInt(c, "days", defaultUpcomingDays)
	limit := queryInt(c, "limit", defaultUpcomingLimit)

	tasks, err := h.taskService.Upcoming(userID, days, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, models.NewTaskViews(tasks, h.taskService.Today()))
}

// GetOverdueTasksHandler lists pending tasks past their deadline, each
// annotated with whole days overdue.
func (h *TaskHandler) GetOverdueTasksHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.Overdue(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, models.NewTaskViews(tasks, h.taskService.Today()))
}

// queryInt parses an optional positive integer query parameter, returning
// def for missing or malformed values.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
