package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/taskhub/backend/internal/model"
)

const (
	defaultTaskPageSize = 50
	maxTaskPageSize     = 200
	maxTitleLength      = 200
)

// TaskStore is implemented by *db.Postgres.
type TaskStore interface {
	CreateTask(ctx context.Context, t *model.Task) (*model.Task, error)
	GetTask(ctx context.Context, ownerID int64, taskID string) (*model.Task, error)
	ListTasks(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, int, error)
	UpdateTask(ctx context.Context, t *model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, ownerID int64, taskID string) error
}

type TaskService struct {
	store    TaskStore
	projects ProjectStore
}

func NewTaskService(store TaskStore, projects ProjectStore) *TaskService {
	return &TaskService{store: store, projects: projects}
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, req model.TaskRequest) (*model.Task, error) {
	task, err := s.taskFromRequest(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	task.ID = uuid.NewString()
	if task.Status == "" {
		task.Status = model.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = model.TaskPriorityMedium
	}
	return s.store.CreateTask(ctx, task)
}

func (s *TaskService) Get(ctx context.Context, ownerID int64, taskID string) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

// List returns one page of tasks plus the filter as actually applied, with
// paging defaults and caps resolved, so callers echo the effective values.
func (s *TaskService) List(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, int, model.TaskFilter, error) {
	if filter.Status != "" && !model.ValidTaskStatus(filter.Status) {
		return nil, 0, filter, ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultTaskPageSize
	}
	if filter.Limit > maxTaskPageSize {
		filter.Limit = maxTaskPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	tasks, total, err := s.store.ListTasks(ctx, ownerID, filter)
	return tasks, total, filter, err
}

func (s *TaskService) Update(ctx context.Context, ownerID int64, taskID string, req model.TaskRequest) (*model.Task, error) {
	existing, err := s.store.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	task, err := s.taskFromRequest(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	task.ID = existing.ID
	if task.Status == "" {
		task.Status = existing.Status
	}
	if task.Priority == "" {
		task.Priority = existing.Priority
	}

	updated, err := s.store.UpdateTask(ctx, task)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID int64, taskID string) error {
	return mapNotFound(s.store.DeleteTask(ctx, ownerID, taskID))
}

func (s *TaskService) taskFromRequest(ctx context.Context, ownerID int64, req model.TaskRequest) (*model.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > maxTitleLength {
		return nil, ErrInvalidInput
	}
	if req.Status != "" && !model.ValidTaskStatus(req.Status) {
		return nil, ErrInvalidInput
	}
	if req.Priority != "" && !model.ValidTaskPriority(req.Priority) {
		return nil, ErrInvalidInput
	}

	// A task may only be filed under a project the caller owns. The lookup
	// is owner-scoped, so someone else's project id reads as not-found.
	if req.ProjectID != nil && *req.ProjectID != "" {
		if _, err := s.projects.GetProject(ctx, ownerID, *req.ProjectID); err != nil {
			return nil, mapNotFound(err)
		}
	} else {
		req.ProjectID = nil
	}

	return &model.Task{
		OwnerID:     ownerID,
		ProjectID:   req.ProjectID,
		Title:       title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}, nil
}
