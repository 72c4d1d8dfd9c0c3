package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskflow-io/taskflow/internal/modules/model"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	GetOwned(ctx context.Context, userID, projectID uuid.UUID, withTasks bool) (*model.Project, error)
	Create(ctx context.Context, p *model.Project) error
	Update(ctx context.Context, userID, projectID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, userID, projectID uuid.UUID) error
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

// ListByUser returns the caller's projects ordered by last update, each with a
// lightweight task summary (id, title, status, priority, due date) instead of
// full task bodies.
func (r *projectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var items []model.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "project_id", "title", "status", "priority", "due_date")
		}).
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

func (r *projectRepo) GetOwned(ctx context.Context, userID, projectID uuid.UUID, withTasks bool) (*model.Project, error) {
	q := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", projectID, userID)
	if withTasks {
		q = q.Preload("Tasks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		})
	}
	var p model.Project
	if err := q.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Update applies only the supplied columns; map updates let an empty value
// through (clearing a description) where struct updates would drop it.
func (r *projectRepo) Update(ctx context.Context, userID, projectID uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ? AND user_id = ?", projectID, userID).
		Updates(updates).Error
}

// Delete removes the project row; child tasks go with it through the
// ON DELETE CASCADE constraint.
func (r *projectRepo) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, userID).
		Delete(&model.Project{}).Error
}
