package main

//	@title			Taskflow API
//	@version		1.0
//	@description	Project and task management API with an AI assistant.
//	@schemes		http https
//	@BasePath		/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				User bearer token issued by /auth/login

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/taskflow-io/taskflow/internal/bootstrap"
	"github.com/taskflow-io/taskflow/internal/config"
	"github.com/taskflow-io/taskflow/internal/modules/handler"
	"github.com/taskflow-io/taskflow/internal/router"
	"go.uber.org/zap"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)

	// init gin
	gin.SetMode(cfg.App.Env)

	// build handlers
	authHandler := do.MustInvoke[*handler.AuthHandler](inj)
	projectHandler := do.MustInvoke[*handler.ProjectHandler](inj)
	taskHandler := do.MustInvoke[*handler.TaskHandler](inj)
	assistantHandler := do.MustInvoke[*handler.AssistantHandler](inj)

	engine := router.NewRouter(router.RouterDeps{
		Config:           cfg,
		Log:              log,
		AuthHandler:      authHandler,
		ProjectHandler:   projectHandler,
		TaskHandler:      taskHandler,
		AssistantHandler: assistantHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
