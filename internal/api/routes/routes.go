package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"taskboard-backend/internal/api/handlers"
	"taskboard-backend/internal/api/middleware"
	"taskboard-backend/internal/auth"
	"taskboard-backend/internal/config"
	"taskboard-backend/internal/database/models"
	"taskboard-backend/internal/repository"
	"taskboard-backend/internal/service"
	"taskboard-backend/internal/storage"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, store *storage.LocalStore) *gin.Engine {
	// Create router
	router := gin.New()

	// Middleware pipeline. Outermost layers run first on the way in and
	// last on the way out, so CORS and the error translator wrap everything.
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second)
	router.Use(rateLimiter.Middleware())
	router.Use(middleware.RequestValidator(cfg.MaxBodySizeBytes))

	// Initialize validator
	validate := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Initialize auth primitives
	tokenService := auth.NewTokenService(cfg.JWTSecret,
		time.Duration(cfg.JWTAccessExpireMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshExpireDays)*24*time.Hour)
	hasher := auth.NewPasswordHasher()
	authMiddleware := auth.NewMiddleware(tokenService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, organizationRepo, tokenService, hasher, validate)
	userService := service.NewUserService(userRepo, validate)
	projectService := service.NewProjectService(projectRepo, userRepo, validate)
	taskService := service.NewTaskService(taskRepo, projectRepo, commentRepo, attachmentRepo,
		store, validate, cfg.MaxAttachmentsPerTask, cfg.MaxUploadSizeBytes())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Root banner and swagger documentation
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Taskboard Backend API",
			"version": "1.0.0",
			"docs":    "/docs/index.html",
		})
	})
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Public routes
		v1.GET("/health", healthHandler.Health)
		v1.GET("/health/db", healthHandler.DatabaseHealth)

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh", authHandler.Refresh)
		}

		// Everything below requires a valid access token and an active user
		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth(), authMiddleware.LoadUser())
		{
			users := protected.Group("/users")
			{
				users.GET("", userHandler.ListUsers)
				users.GET("/me", userHandler.GetMe)
				users.PUT("/me", userHandler.UpdateMe)
			}

			projects := protected.Group("/projects")
			{
				projects.POST("",
					authMiddleware.RequireRoles(models.UserRoleAdmin, models.UserRoleManager),
					projectHandler.CreateProject)
				projects.GET("", projectHandler.ListProjects)
				projects.GET("/:id", projectHandler.GetProject)
				projects.PUT("/:id", projectHandler.UpdateProject)
				projects.DELETE("/:id",
					authMiddleware.RequireRoles(models.UserRoleAdmin),
					projectHandler.DeleteProject)

				projects.GET("/:id/members", projectHandler.GetMembers)
				projects.POST("/:id/members", projectHandler.AddMember)
				projects.DELETE("/:id/members/:user_id", projectHandler.RemoveMember)

				projects.POST("/:id/tasks", taskHandler.CreateTask)
				projects.GET("/:id/tasks", taskHandler.ListTasks)
				projects.GET("/:id/reports/task-count", taskHandler.GetTaskReport)
				projects.GET("/:id/reports/overdue-tasks", taskHandler.GetOverdueTasks)
			}

			tasks := protected.Group("/tasks")
			{
				tasks.GET("/:id", taskHandler.GetTask)
				tasks.PUT("/:id", taskHandler.UpdateTask)
				tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
				tasks.DELETE("/:id", taskHandler.DeleteTask)

				tasks.POST("/:id/comments", taskHandler.AddComment)
				tasks.GET("/:id/comments", taskHandler.ListComments)

				tasks.POST("/:id/attachments", taskHandler.AddAttachment)
				tasks.GET("/:id/attachments", taskHandler.ListAttachments)
				tasks.GET("/:id/attachments/:attachment_id", taskHandler.DownloadAttachment)
			}

			protected.DELETE("/comments/:id", taskHandler.DeleteComment)
			protected.DELETE("/attachments/:id", taskHandler.DeleteAttachment)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success":    false,
			"message":    "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	return router
}
