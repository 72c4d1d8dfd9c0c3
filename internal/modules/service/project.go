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

type ProjectService interface {
	List(ctx context.Context, userID uuid.UUID) ([]ProjectListItem, error)
	Get(ctx context.Context, userID, projectID uuid.UUID) (*ProjectDetail, error)
	Create(ctx context.Context, userID uuid.UUID, in CreateProjectInput) (*ProjectDetail, error)
	Update(ctx context.Context, userID, projectID uuid.UUID, in UpdateProjectInput) (*ProjectDetail, error)
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
}

type projectService struct{ r repo.ProjectRepo }

func NewProjectService(r repo.ProjectRepo) ProjectService {
	return &projectService{r: r}
}

// TaskSummary is the lightweight task annotation on project listings.
type TaskSummary struct {
	ID       uuid.UUID  `json:"id"`
	Title    string     `json:"title"`
	Status   string     `json:"status"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"due_date"`
}

// TaskCounts carries the derived task count, never a stored one.
type TaskCounts struct {
	Tasks int `json:"tasks"`
}

type ProjectListItem struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Status      string        `json:"status"`
	UserID      uuid.UUID     `json:"user_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Tasks       []TaskSummary `json:"tasks"`
	Counts      TaskCounts    `json:"_count"`
}

type ProjectDetail struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Status      string       `json:"status"`
	UserID      uuid.UUID    `json:"user_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Tasks       []model.Task `json:"tasks"`
	Counts      TaskCounts   `json:"_count"`
}

type CreateProjectInput struct {
	Name        string
	Description *string
	Status      string
}

// UpdateProjectInput carries partial-update fields. A nil pointer means "not
// supplied"; a pointer to an empty description means "clear it".
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
}

func (s *projectService) List(ctx context.Context, userID uuid.UUID) ([]ProjectListItem, error) {
	projects, err := s.r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ProjectListItem, 0, len(projects))
	for _, p := range projects {
		summaries := make([]TaskSummary, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			summaries = append(summaries, TaskSummary{
				ID:       t.ID,
				Title:    t.Title,
				Status:   t.Status,
				Priority: t.Priority,
				DueDate:  t.DueDate,
			})
		}
		items = append(items, ProjectListItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      p.Status,
			UserID:      p.UserID,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
			Tasks:       summaries,
			Counts:      TaskCounts{Tasks: len(p.Tasks)},
		})
	}
	return items, nil
}

func (s *projectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*ProjectDetail, error) {
	p, err := s.r.GetOwned(ctx, userID, projectID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %w", ErrNotFound)
		}
		return nil, err
	}
	return projectDetail(p), nil
}

func (s *projectService) Create(ctx context.Context, userID uuid.UUID, in CreateProjectInput) (*ProjectDetail, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = model.ProjectStatusActive
	}

	p := model.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		UserID:      userID,
	}
	if err := s.r.Create(ctx, &p); err != nil {
		return nil, err
	}
	return projectDetail(&p), nil
}

func (s *projectService) Update(ctx context.Context, userID, projectID uuid.UUID, in UpdateProjectInput) (*ProjectDetail, error) {
	if _, err := s.r.GetOwned(ctx, userID, projectID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %w", ErrNotFound)
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil && *in.Name != "" {
		updates["name"] = *in.Name
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

	if len(updates) > 0 {
		if err := s.r.Update(ctx, userID, projectID, updates); err != nil {
			return nil, err
		}
	}

	p, err := s.r.GetOwned(ctx, userID, projectID, true)
	if err != nil {
		return nil, err
	}
	return projectDetail(p), nil
}

func (s *projectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.r.GetOwned(ctx, userID, projectID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("project %w", ErrNotFound)
		}
		return err
	}
	return s.r.Delete(ctx, userID, projectID)
}

func projectDetail(p *model.Project) *ProjectDetail {
	tasks := p.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	return &ProjectDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Tasks:       tasks,
		Counts:      TaskCounts{Tasks: len(tasks)},
	}
}
