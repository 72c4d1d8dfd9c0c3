package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-io/taskflow/internal/modules/serializer"
	"github.com/taskflow-io/taskflow/internal/modules/service"
)

type AssistantHandler struct {
	svc service.AssistantService
}

func NewAssistantHandler(s service.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: s}
}

type GenerateTasksReq struct {
	Prompt      string `json:"prompt" binding:"required"`
	ProjectName string `json:"project_name"`
}

type ChatReq struct {
	Message string                 `json:"message" binding:"required"`
	Context map[string]interface{} `json:"context"`
}

type SummarizeProjectReq struct {
	Project *SummarizeProjectPayload `json:"project" binding:"required"`
}

type SummarizeProjectPayload struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Tasks       []SummarizeTaskItem `json:"tasks"`
}

type SummarizeTaskItem struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type ProjectSuggestionsReq struct {
	ProjectType string `json:"project_type"`
	Goals       string `json:"goals"`
	Timeframe   string `json:"timeframe"`
}

// GenerateTasks godoc
//
//	@Summary		Generate tasks
//	@Description	Turn a natural-language prompt into a structured task list
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.GenerateTasksReq	true	"GenerateTasks payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/ai/generate-tasks [post]
func (h *AssistantHandler) GenerateTasks(c *gin.Context) {
	req := GenerateTasksReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("please provide a prompt", err))
		return
	}

	tasks, err := h.svc.GenerateTasks(c.Request.Context(), req.Prompt, req.ProjectName)
	if err != nil {
		respondErr(c, err)
		return
	}

	projectName := req.ProjectName
	if projectName == "" {
		projectName = "General project"
	}

	c.JSON(http.StatusOK, serializer.OK(gin.H{
		"tasks":        tasks,
		"prompt":       req.Prompt,
		"project_name": projectName,
	}))
}

// Chat godoc
//
//	@Summary		Chat
//	@Description	Free-form chat with the project assistant
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.ChatReq	true	"Chat payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/ai/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	req := ChatReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("please provide a message", err))
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), req.Message, req.Context)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(gin.H{
		"response":  reply,
		"message":   req.Message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}))
}

// SummarizeProject godoc
//
//	@Summary		Summarize project
//	@Description	Produce a progress summary for a project and its tasks
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.SummarizeProjectReq	true	"SummarizeProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/ai/summarize-project [post]
func (h *AssistantHandler) SummarizeProject(c *gin.Context) {
	req := SummarizeProjectReq{}
	if err := c.ShouldBind(&req); err != nil || req.Project == nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("please provide project data", err))
		return
	}

	in := service.ProjectSummaryInput{
		Name:        req.Project.Name,
		Description: req.Project.Description,
		Status:      req.Project.Status,
	}
	for _, t := range req.Project.Tasks {
		in.Tasks = append(in.Tasks, service.SummaryTask{
			Title:    t.Title,
			Status:   t.Status,
			Priority: t.Priority,
		})
	}

	summary, err := h.svc.SummarizeProject(c.Request.Context(), in)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(gin.H{
		"summary":      summary,
		"project_name": req.Project.Name,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	}))
}

// ProjectSuggestions godoc
//
//	@Summary		Project suggestions
//	@Description	Get planning recommendations for a project type and goals
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.ProjectSuggestionsReq	true	"ProjectSuggestions payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/ai/project-suggestions [post]
func (h *AssistantHandler) ProjectSuggestions(c *gin.Context) {
	req := ProjectSuggestionsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	suggestions, err := h.svc.ProjectSuggestions(c.Request.Context(), service.SuggestionInput{
		ProjectType: req.ProjectType,
		Goals:       req.Goals,
		Timeframe:   req.Timeframe,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(gin.H{
		"suggestions":  suggestions,
		"project_type": req.ProjectType,
		"goals":        req.Goals,
		"timeframe":    req.Timeframe,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	}))
}
