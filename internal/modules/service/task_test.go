package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/taskflow-io/taskflow/internal/modules/model"
	"gorm.io/gorm"
)

// MockTaskRepo is a mock implementation of TaskRepo
type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) GetOwned(ctx context.Context, userID, taskID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, taskID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, taskID, updates)
	return args.Error(0)
}

func (m *MockTaskRepo) Delete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskRepo) CreateBatch(ctx context.Context, tasks []model.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

// MockProjectRepo is a mock implementation of ProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) GetOwned(ctx context.Context, userID, projectID uuid.UUID, withTasks bool) (*model.Project, error) {
	args := m.Called(ctx, userID, projectID, withTasks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepo) Update(ctx context.Context, userID, projectID uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, userID, projectID, updates)
	return args.Error(0)
}

func (m *MockProjectRepo) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

func TestTaskService_Create_Defaults(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	projects.On("GetOwned", mock.Anything, userID, projectID, false).
		Return(&model.Project{ID: projectID, Name: "Website", UserID: userID}, nil)

	tasks := &MockTaskRepo{}
	tasks.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.Status == model.TaskStatusTodo && task.Priority == model.TaskPriorityMedium
	})).Return(nil)

	svc := NewTaskService(tasks, projects)
	out, err := svc.Create(context.Background(), userID, CreateTaskInput{
		Title:     "Write landing page copy",
		ProjectID: projectID,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.TaskStatusTodo, out.Status)
	assert.Equal(t, model.TaskPriorityMedium, out.Priority)
	assert.Nil(t, out.DueDate)
	assert.NotNil(t, out.Project)
	assert.Equal(t, "Website", out.Project.Name)
	tasks.AssertExpectations(t)
	projects.AssertExpectations(t)
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc := NewTaskService(&MockTaskRepo{}, &MockProjectRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateTaskInput{ProjectID: uuid.New()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), uuid.New(), CreateTaskInput{Title: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_Create_ProjectNotOwned(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	projects.On("GetOwned", mock.Anything, userID, projectID, false).
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewTaskService(&MockTaskRepo{}, projects)
	_, err := svc.Create(context.Background(), userID, CreateTaskInput{
		Title:     "x",
		ProjectID: projectID,
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_Create_DueDateParsing(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	projects.On("GetOwned", mock.Anything, userID, projectID, false).
		Return(&model.Project{ID: projectID, UserID: userID}, nil)

	tasks := &MockTaskRepo{}
	tasks.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewTaskService(tasks, projects)

	out, err := svc.Create(context.Background(), userID, CreateTaskInput{
		Title:     "x",
		ProjectID: projectID,
		DueDate:   "2026-09-15",
	})
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), out.DueDate.UTC())

	_, err = svc.Create(context.Background(), userID, CreateTaskInput{
		Title:     "x",
		ProjectID: projectID,
		DueDate:   "next tuesday",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskService_Update_PartialFields(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tasks := &MockTaskRepo{}
	tasks.On("GetOwned", mock.Anything, userID, taskID).
		Return(&model.Task{ID: taskID, Title: "Old title", Status: model.TaskStatusTodo}, nil)
	tasks.On("Update", mock.Anything, taskID, mock.MatchedBy(func(updates map[string]interface{}) bool {
		_, hasTitle := updates["title"]
		return updates["status"] == model.TaskStatusCompleted && !hasTitle && len(updates) == 1
	})).Return(nil)

	status := model.TaskStatusCompleted
	svc := NewTaskService(tasks, &MockProjectRepo{})
	_, err := svc.Update(context.Background(), userID, taskID, UpdateTaskInput{Status: &status})

	assert.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskService_Update_ClearDueDate(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tasks := &MockTaskRepo{}
	tasks.On("GetOwned", mock.Anything, userID, taskID).
		Return(&model.Task{ID: taskID}, nil)
	tasks.On("Update", mock.Anything, taskID, mock.MatchedBy(func(updates map[string]interface{}) bool {
		v, ok := updates["due_date"]
		return ok && v == nil
	})).Return(nil)

	empty := ""
	svc := NewTaskService(tasks, &MockProjectRepo{})
	_, err := svc.Update(context.Background(), userID, taskID, UpdateTaskInput{DueDate: &empty})

	assert.NoError(t, err)
	tasks.AssertExpectations(t)
}

func TestTaskService_ListByProject_ChecksOwnershipFirst(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	projects.On("GetOwned", mock.Anything, userID, projectID, false).
		Return(nil, gorm.ErrRecordNotFound)

	tasks := &MockTaskRepo{}

	svc := NewTaskService(tasks, projects)
	_, err := svc.ListByProject(context.Background(), userID, projectID)

	assert.ErrorIs(t, err, ErrNotFound)
	tasks.AssertNotCalled(t, "ListByProject", mock.Anything, mock.Anything)
}

func TestTaskService_BulkCreate(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	projects.On("GetOwned", mock.Anything, userID, projectID, false).
		Return(&model.Project{ID: projectID, UserID: userID}, nil)

	tasks := &MockTaskRepo{}
	tasks.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []model.Task) bool {
		if len(batch) != 5 {
			return false
		}
		for _, task := range batch {
			if task.ProjectID != projectID || task.Status == "" || task.Priority == "" {
				return false
			}
		}
		return true
	})).Return(nil)

	items := make([]BulkTaskItem, 5)
	for i := range items {
		items[i] = BulkTaskItem{Title: "task"}
	}

	svc := NewTaskService(tasks, projects)
	count, err := svc.BulkCreate(context.Background(), userID, projectID, items)

	assert.NoError(t, err)
	assert.Equal(t, 5, count)
	tasks.AssertExpectations(t)
}

func TestTaskService_BulkCreate_Validation(t *testing.T) {
	svc := NewTaskService(&MockTaskRepo{}, &MockProjectRepo{})

	_, err := svc.BulkCreate(context.Background(), uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrValidation)

	projects := &MockProjectRepo{}
	projects.On("GetOwned", mock.Anything, mock.Anything, mock.Anything, false).
		Return(&model.Project{}, nil)
	tasks := &MockTaskRepo{}
	svc = NewTaskService(tasks, projects)

	cases := []struct {
		name  string
		items []BulkTaskItem
	}{
		{"empty title", []BulkTaskItem{{Title: ""}}},
		{"unknown status", []BulkTaskItem{{Title: "t1", Status: "bogus-status"}}},
		{"unknown priority", []BulkTaskItem{{Title: "t1", Priority: "urgent"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.BulkCreate(context.Background(), uuid.New(), uuid.New(), c.items)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	tasks.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestTaskService_ListByProject_EmptyProject(t *testing.T) {
	userID := uuid.New()
	projectID := uuid.New()

	projects := &MockProjectRepo{}
	projects.On("GetOwned", mock.Anything, userID, projectID, false).
		Return(&model.Project{ID: projectID, UserID: userID}, nil)

	tasks := &MockTaskRepo{}
	tasks.On("ListByProject", mock.Anything, projectID).Return(nil, nil)

	svc := NewTaskService(tasks, projects)
	out, err := svc.ListByProject(context.Background(), userID, projectID)

	assert.NoError(t, err)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()

	tasks := &MockTaskRepo{}
	tasks.On("GetOwned", mock.Anything, userID, taskID).
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewTaskService(tasks, &MockProjectRepo{})
	err := svc.Delete(context.Background(), userID, taskID)

	assert.ErrorIs(t, err, ErrNotFound)
	tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
