package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// TaskHandler handles the task CRUD endpoints. Every operation is scoped to
// the authenticated owner from the request context.
type TaskHandler struct {
	logger *slog.Logger
	tasks  storage.TaskStorage
}

// NewTaskHandler creates a new handler for task endpoints
func NewTaskHandler(logger *slog.Logger, tasks storage.TaskStorage) *TaskHandler {
	return &TaskHandler{
		logger: logger,
		tasks:  tasks,
	}
}

// Create handles POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create task request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		sendError(h.logger, w, "description is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New().String(),
		OwnerID:     user.ID,
		Description: req.Description,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.tasks.CreateTask(ctx, task); err != nil {
		h.logger.ErrorContext(ctx, "failed to create task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task created",
		slog.String("task_id", task.ID),
		slog.String("user_id", user.ID))

	sendJSON(h.logger, w, toAPITask(task), http.StatusCreated)
}

// List handles GET /tasks with the query contract
// ?completed=true|false&limit=N&skip=N&sortBy=createdAt:asc|desc
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseTaskFilter(r.URL.Query().Get("completed"),
		r.URL.Query().Get("limit"),
		r.URL.Query().Get("skip"),
		r.URL.Query().Get("sortBy"))
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	tasks, err := h.tasks.ListTasks(ctx, user.ID, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tasks", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Task, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, toAPITask(task))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get handles GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.tasks.GetTask(ctx, user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toAPITask(task), http.StatusOK)
}

// Update handles PATCH /tasks/{id}. Only description and completed are
// mutable; unknown fields fail decoding with 400.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req api.UpdateTaskRequest
	if err := decoder.Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update task request", slog.Any("error", err))
		sendError(h.logger, w, "invalid updates", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.GetTask(ctx, user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			sendError(h.logger, w, "description cannot be empty", http.StatusBadRequest)
			return
		}
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.UpdatedAt = time.Now()

	if err := h.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toAPITask(task), http.StatusOK)
}

// Delete handles DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	task, err := h.tasks.GetTask(ctx, user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.tasks.DeleteTask(ctx, user.ID, task.ID); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task deleted",
		slog.String("task_id", task.ID),
		slog.String("user_id", user.ID))

	sendJSON(h.logger, w, toAPITask(task), http.StatusOK)
}

// parseTaskFilter translates the raw query values into a storage filter
func parseTaskFilter(completed, limit, skip, sortBy string) (storage.TaskFilter, error) {
	filter := storage.TaskFilter{Sort: storage.SortAsc}

	if completed != "" {
		v := completed == "true"
		if !v && completed != "false" {
			return filter, errors.New("completed must be true or false")
		}
		filter.Completed = &v
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return filter, errors.New("limit must be a non-negative integer")
		}
		filter.Limit = n
	}

	if skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil || n < 0 {
			return filter, errors.New("skip must be a non-negative integer")
		}
		filter.Skip = n
	}

	switch sortBy {
	case "", "createdAt", "createdAt:asc":
		filter.Sort = storage.SortAsc
	case "createdAt:desc":
		filter.Sort = storage.SortDesc
	default:
		return filter, errors.New("sortBy must be createdAt:asc or createdAt:desc")
	}

	return filter, nil
}

func toAPITask(task *models.Task) api.Task {
	return api.Task{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
