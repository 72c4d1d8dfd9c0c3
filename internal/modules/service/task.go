package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskflow-io/taskflow/internal/modules/model"
	"github.com/taskflow-io/taskflow/internal/modules/repo"
	"gorm.io/gorm"
)

type TaskService interface {
	ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]model.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (*TaskDetail, error)
	Create(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*TaskDetail, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, in UpdateTaskInput) (*TaskDetail, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
	BulkCreate(ctx context.Context, userID, projectID uuid.UUID, items []BulkTaskItem) (int, error)
}

type taskService struct {
	r        repo.TaskRepo
	projects repo.ProjectRepo
}

func NewTaskService(r repo.TaskRepo, projects repo.ProjectRepo) TaskService {
	return &taskService{r: r, projects: projects}
}

// ProjectBrief is the embedded parent reference on a task detail.
type ProjectBrief struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TaskDetail struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	DueDate     *time.Time    `json:"due_date"`
	ProjectID   uuid.UUID     `json:"project_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Project     *ProjectBrief `json:"project,omitempty"`
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      string
	Priority    string
	DueDate     string
	ProjectID   uuid.UUID
}

// UpdateTaskInput carries partial-update fields; nil means "not supplied".
// An empty DueDate string clears the due date.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}

type BulkTaskItem struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=todo in-progress completed"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string  `json:"due_date"`
}

func (s *taskService) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]model.Task, error) {
	// project ownership is checked before tasks are queried
	if _, err := s.projects.GetOwned(ctx, userID, projectID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %w", ErrNotFound)
		}
		return nil, err
	}
	tasks, err := s.r.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *taskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*TaskDetail, error) {
	t, err := s.r.GetOwned(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %w", ErrNotFound)
		}
		return nil, err
	}
	return taskDetail(t), nil
}

func (s *taskService) Create(ctx context.Context, userID uuid.UUID, in CreateTaskInput) (*TaskDetail, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrValidation)
	}
	if in.ProjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: project id is required", ErrValidation)
	}

	project, err := s.projects.GetOwned(ctx, userID, in.ProjectID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %w", ErrNotFound)
		}
		return nil, err
	}

	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	t := model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      defaultString(in.Status, model.TaskStatusTodo),
		Priority:    defaultString(in.Priority, model.TaskPriorityMedium),
		DueDate:     dueDate,
		ProjectID:   in.ProjectID,
	}
	if err := s.r.Create(ctx, &t); err != nil {
		return nil, err
	}

	t.Project = &model.Project{ID: project.ID, Name: project.Name}
	return taskDetail(&t), nil
}

func (s *taskService) Update(ctx context.Context, userID, taskID uuid.UUID, in UpdateTaskInput) (*TaskDetail, error) {
	if _, err := s.r.GetOwned(ctx, userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %w", ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil && *in.Title != "" {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		if *in.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *in.Description
		}
	}
	if in.Status != nil && *in.Status != "" {
		updates["status"] = *in.Status
	}
	if in.Priority != nil && *in.Priority != "" {
		updates["priority"] = *in.Priority
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			updates["due_date"] = nil
		} else {
			dueDate, err := parseDueDate(*in.DueDate)
			if err != nil {
				return nil, err
			}
			updates["due_date"] = dueDate
		}
	}

	if len(updates) > 0 {
		if err := s.r.Update(ctx, taskID, updates); err != nil {
			return nil, err
		}
	}

	t, err := s.r.GetOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	return taskDetail(t), nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if _, err := s.r.GetOwned(ctx, userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("task %w", ErrNotFound)
		}
		return err
	}
	return s.r.Delete(ctx, taskID)
}

func (s *taskService) BulkCreate(ctx context.Context, userID, projectID uuid.UUID, items []BulkTaskItem) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: tasks must be a non-empty list", ErrValidation)
	}
	if projectID == uuid.Nil {
		return 0, fmt.Errorf("%w: project id is required", ErrValidation)
	}

	if _, err := s.projects.GetOwned(ctx, userID, projectID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("project %w", ErrNotFound)
		}
		return 0, err
	}

	tasks := make([]model.Task, 0, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			return 0, fmt.Errorf("%w: tasks[%d]: title is required", ErrValidation, i)
		}
		status := defaultString(item.Status, model.TaskStatusTodo)
		if !model.ValidTaskStatus(status) {
			return 0, fmt.Errorf("%w: tasks[%d]: invalid status %q", ErrValidation, i, item.Status)
		}
		priority := defaultString(item.Priority, model.TaskPriorityMedium)
		if !model.ValidTaskPriority(priority) {
			return 0, fmt.Errorf("%w: tasks[%d]: invalid priority %q", ErrValidation, i, item.Priority)
		}
		dueDate, err := parseDueDate(item.DueDate)
		if err != nil {
			return 0, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		tasks = append(tasks, model.Task{
			Title:       item.Title,
			Description: item.Description,
			Status:      status,
			Priority:    priority,
			DueDate:     dueDate,
			ProjectID:   projectID,
		})
	}

	if err := s.r.CreateBatch(ctx, tasks); err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func taskDetail(t *model.Task) *TaskDetail {
	d := &TaskDetail{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		ProjectID:   t.ProjectID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Project != nil {
		d.Project = &ProjectBrief{ID: t.Project.ID, Name: t.Project.Name}
	}
	return d
}

// parseDueDate accepts RFC3339 timestamps or bare dates; empty means unset.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return &ts, nil
	}
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", ErrValidation, s)
	}
	return &ts, nil
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
