package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/yukikurage/project-tracker-api/internal/config"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/handlers"
	"github.com/yukikurage/project-tracker-api/internal/logger"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, err := logger.New(&logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogAddSource,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(cfg, appLog); err != nil {
		appLog.Error("server stopped", logger.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLog *logger.Logger) error {
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, appLog.Component("gorm"))
	if err != nil {
		return err
	}

	if err := database.Migrate(db); err != nil {
		return err
	}

	created, err := database.SeedAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		appLog.Info("administrator created", "email", cfg.AdminEmail)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)

	var drafts services.TaskDraftGenerator
	if cfg.OpenAIAPIKey != "" {
		drafts = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		appLog.Warn("OPENAI_API_KEY is not set, task generation is disabled")
	}
	taskService := services.NewTaskService(taskRepo, userRepo, projectService, userService, drafts)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Log:          appLog.Component("http"),
		SessionStore: store,
		Registry:     registry,
		Auth:         services.NewAuthService(userRepo),
		Users:        userService,
		Projects:     projectService,
		Tasks:        taskService,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("server starting", "addr", cfg.ServerAddr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

// newSessionStore builds the session backend selected by SESSION_STORE.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			cfg.RedisAddr(),
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	return store, nil
}
