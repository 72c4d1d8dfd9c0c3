package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskflow-io/taskflow/internal/modules/serializer"
	"github.com/taskflow-io/taskflow/internal/modules/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name        string  `form:"name" json:"name" binding:"required"`
	Description *string `form:"description" json:"description"`
	Status      string  `form:"status" json:"status" binding:"omitempty,oneof=active completed on-hold cancelled"`
}

type UpdateProjectReq struct {
	Name        *string `form:"name" json:"name"`
	Description *string `form:"description" json:"description"`
	Status      *string `form:"status" json:"status" binding:"omitempty,oneof=active completed on-hold cancelled"`
}

// GetProjects godoc
//
//	@Summary		List projects
//	@Description	List the caller's projects with task summaries and counts
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]service.ProjectListItem}
//	@Router			/projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OKCount(len(items), items))
}

// GetProject godoc
//
//	@Summary		Get project
//	@Description	Get one project with its full task list
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ProjectDetail}
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
		return
	}

	project, err := h.svc.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(project))
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a new project owned by the caller
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=service.ProjectDetail}
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	req := CreateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("please provide a project name", err))
		return
	}

	project, err := h.svc.Create(c.Request.Context(), userID, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(project))
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Apply a partial update; only supplied fields change
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ProjectDetail}
//	@Router			/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.Update(c.Request.Context(), userID, projectID, service.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(project))
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project and all of its tasks
//	@Tags			projects
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, projectID); err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(gin.H{}))
}
