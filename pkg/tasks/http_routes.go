package tasks

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/opsboard/taskboard/pkg/tasks/api"
	taskerr "github.com/opsboard/taskboard/pkg/tasks/errors"
	"github.com/opsboard/taskboard/pkg/tasks/models"
	"go.uber.org/zap"
)

func (h *HttpHandler) Register(e *echo.Echo) {
	g := e.Group("/api")
	// Get all tasks enriched with their lookup names
	g.GET("/tasks", h.ListTasks)
	// Create a new task
	g.POST("/tasks", h.CreateTask)
	// Partially update a task
	g.PUT("/tasks/:id", h.UpdateTask)
	// Delete a task
	g.DELETE("/tasks/:id", h.DeleteTask)
	// Get the id/name entries of a lookup table
	g.GET("/lookups/:table", h.GetLookup)
}

func bindValidate(ctx echo.Context, i interface{}) error {
	if err := ctx.Bind(i); err != nil {
		return err
	}

	if err := ctx.Validate(i); err != nil {
		return err
	}

	return nil
}

func taskID(ctx echo.Context) (uint, error) {
	idStr := ctx.Param("id")
	if idStr == "" {
		return 0, errors.New("Task ID is required")
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, errors.New("Task ID must be an integer")
	}
	return uint(id), nil
}

// resolveLookup maps a lookup display name to its surrogate key through the
// read-through cache. A miss invalidates and reloads once, so lookup rows
// added since the last cache fill are still found.
func (h *HttpHandler) resolveLookup(ctx echo.Context, table, name string) (uint, bool, error) {
	reqCtx := ctx.Request().Context()

	load := func() (map[string]uint, error) {
		return h.db.LookupEntries(table)
	}

	entries, err := h.lookups.Get(reqCtx, table, load)
	if err != nil {
		return 0, false, err
	}
	if id, ok := entries[name]; ok {
		return id, true, nil
	}

	if err := h.lookups.Invalidate(reqCtx, table); err != nil {
		h.logger.Warn("failed to invalidate lookup cache", zap.String("table", table), zap.Error(err))
	}
	entries, err = h.lookups.Get(reqCtx, table, load)
	if err != nil {
		return 0, false, err
	}
	id, ok := entries[name]
	return id, ok, nil
}

// ListTasks godoc
//
//	@Summary		Returns every task joined with its job type and status names
//	@Description	Returns every task joined with its job type and status names, ascending by id
//	@Tags			tasks
//	@Produce		json
//	@Success		200	{array}	models.EnrichedTask
//	@Router			/api/tasks [get]
func (h *HttpHandler) ListTasks(ctx echo.Context) error {
	tasks, err := h.db.ListTasks()
	if err != nil {
		h.logger.Error("failed to list tasks", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list tasks"})
	}

	return ctx.JSON(http.StatusOK, tasks)
}

// CreateTask godoc
//
//	@Summary		Creates a task
//	@Description	Creates a task, resolving the job type and status names to their surrogate keys
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	api.MessageResponse
//	@Router			/api/tasks [post]
func (h *HttpHandler) CreateTask(ctx echo.Context) error {
	var req api.CreateTaskRequest
	if err := bindValidate(ctx, &req); err != nil {
		h.logger.Warn("failed to bind create task request", zap.Error(err))
		return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
	}

	jobTypeID, ok, err := h.resolveLookup(ctx, models.LookupTableJobType, req.TaskType)
	if err != nil {
		h.logger.Error("failed to resolve job type", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create task"})
	}
	if !ok {
		return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown job type: " + req.TaskType})
	}

	statusID, ok, err := h.resolveLookup(ctx, models.LookupTableStatus, req.Status)
	if err != nil {
		h.logger.Error("failed to resolve status", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create task"})
	}
	if !ok {
		return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown status: " + req.Status})
	}

	task := models.Task{
		JobTypeID: jobTypeID,
		JobName:   req.TaskName,
		StartTime: req.StartTime.Time,
		EndTime:   req.EndTime.Time,
		StatusID:  statusID,
		CreatedAt: req.CreatedAt.Time,
		UpdatedAt: req.UpdatedAt.Time,
	}
	if err := h.db.CreateTask(&task); err != nil {
		h.logger.Error("failed to create task", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create task"})
	}

	return ctx.JSON(http.StatusOK, api.MessageResponse{
		Message: "Task added successfully",
		Result:  task,
	})
}

// UpdateTask godoc
//
//	@Summary		Partially updates a task
//	@Description	Applies the fields present in the payload to the task, leaving the rest unchanged
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	api.MessageResponse
//	@Router			/api/tasks/{id} [put]
func (h *HttpHandler) UpdateTask(ctx echo.Context) error {
	id, err := taskID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	}

	var req api.UpdateTaskRequest
	if err := bindValidate(ctx, &req); err != nil {
		h.logger.Warn("failed to bind update task request", zap.Uint("task_id", id), zap.Error(err))
		return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
	}

	fields := req.Fields()
	if err := h.db.UpdateTask(id, fields); err != nil {
		switch {
		case errors.Is(err, taskerr.ErrNoFieldsToUpdate):
			return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid data provided"})
		case errors.Is(err, taskerr.ErrTaskNotFound):
			return ctx.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Task not found"})
		default:
			h.logger.Error("failed to update task", zap.Uint("task_id", id), zap.Error(err))
			return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update task"})
		}
	}

	return ctx.JSON(http.StatusOK, api.MessageResponse{
		Message: "Task updated successfully",
		Result:  fields,
	})
}

// DeleteTask godoc
//
//	@Summary		Deletes a task
//	@Description	Deletes the task with the given id
//	@Tags			tasks
//	@Produce		json
//	@Success		200	{object}	api.MessageResponse
//	@Router			/api/tasks/{id} [delete]
func (h *HttpHandler) DeleteTask(ctx echo.Context) error {
	id, err := taskID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	}

	if err := h.db.DeleteTask(id); err != nil {
		if errors.Is(err, taskerr.ErrTaskNotFound) {
			return ctx.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Task not found"})
		}
		h.logger.Error("failed to delete task", zap.Uint("task_id", id), zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete task"})
	}

	return ctx.JSON(http.StatusOK, api.MessageResponse{
		Message: "Task deleted successfully",
	})
}

// GetLookup godoc
//
//	@Summary		Returns the entries of a lookup table
//	@Description	Returns the id/name entries of the jobtype or status lookup table
//	@Tags			lookups
//	@Produce		json
//	@Success		200	{array}	api.LookupEntry
//	@Router			/api/lookups/{table} [get]
func (h *HttpHandler) GetLookup(ctx echo.Context) error {
	table := ctx.Param("table")
	if table != models.LookupTableJobType && table != models.LookupTableStatus {
		return ctx.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown lookup table: " + table})
	}

	entries, err := h.lookups.Get(ctx.Request().Context(), table, func() (map[string]uint, error) {
		return h.db.LookupEntries(table)
	})
	if err != nil {
		h.logger.Error("failed to get lookup entries", zap.String("table", table), zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get lookup entries"})
	}

	list := make([]api.LookupEntry, 0, len(entries))
	for name, id := range entries {
		list = append(list, api.LookupEntry{ID: id, Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return ctx.JSON(http.StatusOK, list)
}
