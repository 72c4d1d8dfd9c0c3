package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskflow-io/taskflow/internal/modules/serializer"
	"github.com/taskflow-io/taskflow/internal/modules/service"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	Title       string  `form:"title" json:"title" binding:"required"`
	Description *string `form:"description" json:"description"`
	Status      string  `form:"status" json:"status" binding:"omitempty,oneof=todo in-progress completed"`
	Priority    string  `form:"priority" json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string  `form:"due_date" json:"due_date"`
	ProjectID   string  `form:"project_id" json:"project_id" binding:"required"`
}

type UpdateTaskReq struct {
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
	Status      *string `form:"status" json:"status" binding:"omitempty,oneof=todo in-progress completed"`
	Priority    *string `form:"priority" json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `form:"due_date" json:"due_date"`
}

type BulkCreateTasksReq struct {
	Tasks     []service.BulkTaskItem `json:"tasks" binding:"required,min=1,dive"`
	ProjectID string                 `json:"project_id" binding:"required"`
}

// GetProjectTasks godoc
//
//	@Summary		List tasks by project
//	@Description	List all tasks of a project owned by the caller
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/tasks/project/{project_id} [get]
func (h *TaskHandler) GetProjectTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
		return
	}

	tasks, err := h.svc.ListByProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OKCount(len(tasks), tasks))
}

// GetTask godoc
//
//	@Summary		Get task
//	@Description	Get one task with its parent project reference
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.TaskDetail}
//	@Router			/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("task not found"))
		return
	}

	task, err := h.svc.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(task))
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Create a task under a project owned by the caller
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTaskReq	true	"CreateTask payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=service.TaskDetail}
//	@Router			/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	req := CreateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("please provide task title and project ID", err))
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project ID", err))
		return
	}

	task, err := h.svc.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ProjectID:   projectID,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(task))
}

// UpdateTask godoc
//
//	@Summary		Update task
//	@Description	Apply a partial update; only supplied fields change
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Task ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateTaskReq	true	"UpdateTask payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.TaskDetail}
//	@Router			/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("task not found"))
		return
	}

	req := UpdateTaskReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task, err := h.svc.Update(c.Request.Context(), userID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(task))
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Description	Delete a task owned by the caller
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("task not found"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, taskID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(gin.H{}))
}

// BulkCreateTasks godoc
//
//	@Summary		Bulk create tasks
//	@Description	Insert many tasks under one project as a single atomic batch
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.BulkCreateTasksReq	true	"BulkCreateTasks payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response
//	@Router			/tasks/bulk [post]
func (h *TaskHandler) BulkCreateTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	req := BulkCreateTasksReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("please provide tasks array and project ID", err))
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid project ID", err))
		return
	}

	count, err := h.svc.BulkCreate(c.Request.Context(), userID, projectID, req.Tasks)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(gin.H{
		"count":   count,
		"message": fmt.Sprintf("%d tasks created successfully", count),
	}))
}
