package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskflow-io/taskflow/internal/modules/model"
	"gorm.io/gorm"
)

type TaskRepo interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error)
	GetOwned(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error)
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, taskID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, taskID uuid.UUID) error
	CreateBatch(ctx context.Context, tasks []model.Task) error
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

// ListByProject returns a non-nil slice so zero tasks serialize as an empty
// array rather than null.
func (r *taskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	items := make([]model.Task, 0)
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// GetOwned resolves ownership through the parent project: the task is only
// returned when its project belongs to the caller.
func (r *taskRepo) GetOwned(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	var t model.Task
	err := r.db.WithContext(ctx).
		Select("tasks.*").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.user_id = ?", taskID, userID).
		Preload("Project", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name")
		}).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) Create(ctx context.Context, t *model.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *taskRepo) Update(ctx context.Context, taskID uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(updates).Error
}

func (r *taskRepo) Delete(ctx context.Context, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", taskID).
		Delete(&model.Task{}).Error
}

// CreateBatch inserts all rows in one statement, so the batch is all-or-nothing.
func (r *taskRepo) CreateBatch(ctx context.Context, tasks []model.Task) error {
	return r.db.WithContext(ctx).Create(&tasks).Error
}
