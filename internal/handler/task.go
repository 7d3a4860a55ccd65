package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TaskRequest true "Task fields"
// @Success 201 {object} model.TaskResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	var req model.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, categoryInvalidRequest, "invalid request body")
		return
	}

	task, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task.Response())
}

// List godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (todo, in_progress, done)"
// @Param projectId query string false "Filter by project"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} model.TaskListResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	filter := model.TaskFilter{
		Status:    c.Query("status"),
		ProjectID: c.Query("projectId"),
		Limit:     queryInt(c, "limit"),
		Offset:    queryInt(c, "offset"),
	}

	tasks, total, applied, err := h.svc.List(c.Request.Context(), user.ID, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]model.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, tasks[i].Response())
	}
	c.JSON(http.StatusOK, model.TaskListResponse{
		Items:  items,
		Total:  total,
		Limit:  applied.Limit,
		Offset: applied.Offset,
	})
}

// Get godoc
// @Summary Get one task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Success 200 {object} model.TaskResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	user := GetAuthUser(c)
	task, err := h.svc.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task.Response())
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task id"
// @Param request body model.TaskRequest true "Task fields"
// @Success 200 {object} model.TaskResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	user := GetAuthUser(c)
	var req model.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, categoryInvalidRequest, "invalid request body")
		return
	}

	task, err := h.svc.Update(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task.Response())
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task id"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	user := GetAuthUser(c)
	if err := h.svc.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, key string) int {
	val, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return val
}
