package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/logger"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// RouterDeps is everything NewRouter wires into the engine.
type RouterDeps struct {
	Log          *logger.Logger
	SessionStore sessions.Store
	Registry     *prometheus.Registry

	Auth     *services.AuthService
	Users    *services.UserService
	Projects *services.ProjectService
	Tasks    *services.TaskService
}

// NewRouter builds the gin engine with all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	metrics := middleware.NewMetrics(deps.Registry)
	r.Use(
		middleware.Recovery(deps.Log),
		middleware.RequestLogger(deps.Log),
		metrics.Handler(),
		sessions.Sessions(constants.SessionCookieName, deps.SessionStore),
	)

	authHandler := NewAuthHandler(deps.Auth)
	projectHandler := NewProjectHandler(deps.Projects, deps.Tasks)
	userHandler := NewUserHandler(deps.Users, deps.Tasks)
	taskHandler := NewTaskHandler(deps.Tasks)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	requireAuth := middleware.RequireAuth(deps.Users)
	requireAdmin := middleware.RequireAdmin()
	requireUUID := middleware.RequireUUIDParam()

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/project", requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:uuid", requireUUID, projectHandler.GetProject)
			projects.PUT("/:uuid", requireUUID, projectHandler.UpdateProject)
			projects.DELETE("/:uuid", requireUUID, requireAdmin, projectHandler.SuspendProject)
			projects.POST("/:uuid/activate", requireUUID, requireAdmin, projectHandler.ActivateProject)
			projects.POST("/:uuid/participants", requireUUID, projectHandler.AddParticipants)
			projects.DELETE("/:uuid/participants", requireUUID, projectHandler.RemoveParticipants)
			projects.POST("/:uuid/tasks/generate", requireUUID, projectHandler.GenerateTasks)
		}

		// User routes (protected)
		users := api.Group("/user", requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", requireAdmin, userHandler.CreateUser)
			users.GET("/:uuid", requireUUID, userHandler.GetUser)
			users.GET("/:uuid/tracked-time", requireUUID, userHandler.GetTrackedTime)
			users.PUT("/:uuid", requireUUID, requireAdmin, userHandler.UpdateUser)
			users.DELETE("/:uuid", requireUUID, requireAdmin, userHandler.BlockUser)
			users.POST("/:uuid/unblock", requireUUID, requireAdmin, userHandler.UnblockUser)
		}

		// Task routes (protected)
		tasks := api.Group("/task", requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:uuid", requireUUID, taskHandler.GetTask)
			tasks.PUT("/:uuid", requireUUID, taskHandler.UpdateTask)
			tasks.DELETE("/:uuid", requireUUID, taskHandler.DeleteTask)
			tasks.POST("/:uuid/restore", requireUUID, taskHandler.RestoreTask)
		}
	}

	return r
}
