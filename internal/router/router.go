package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/taskflow-io/taskflow/docs"
	"github.com/taskflow-io/taskflow/internal/config"
	"github.com/taskflow-io/taskflow/internal/middleware"
	"github.com/taskflow-io/taskflow/internal/modules/handler"
	"github.com/taskflow-io/taskflow/internal/modules/serializer"
)

type RouterDeps struct {
	Config           *config.Config
	Log              *zap.Logger
	AuthHandler      *handler.AuthHandler
	ProjectHandler   *handler.ProjectHandler
	TaskHandler      *handler.TaskHandler
	AssistantHandler *handler.AssistantHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.OK("ok")) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.AuthHandler.Register)
			auth.POST("/login", d.AuthHandler.Login)
			auth.GET("/me", middleware.UserAuth(d.Config), d.AuthHandler.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.UserAuth(d.Config))

		projects := protected.Group("/projects")
		{
			projects.GET("", d.ProjectHandler.GetProjects)
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("/:id", d.ProjectHandler.GetProject)
			projects.PUT("/:id", d.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", d.ProjectHandler.DeleteProject)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("/project/:project_id", d.TaskHandler.GetProjectTasks)
			tasks.POST("/bulk", d.TaskHandler.BulkCreateTasks)

			tasks.POST("", d.TaskHandler.CreateTask)
			tasks.GET("/:id", d.TaskHandler.GetTask)
			tasks.PUT("/:id", d.TaskHandler.UpdateTask)
			tasks.DELETE("/:id", d.TaskHandler.DeleteTask)
		}

		ai := protected.Group("/ai")
		{
			ai.POST("/generate-tasks", d.AssistantHandler.GenerateTasks)
			ai.POST("/chat", d.AssistantHandler.Chat)
			ai.POST("/summarize-project", d.AssistantHandler.SummarizeProject)
			ai.POST("/project-suggestions", d.AssistantHandler.ProjectSuggestions)
		}
	}
	return r
}
