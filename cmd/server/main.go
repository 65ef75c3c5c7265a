package main

import (
	"github.com/devmarket/marketplace-api/internal/config"
	"github.com/devmarket/marketplace-api/internal/constants"
	"github.com/devmarket/marketplace-api/internal/database"
	"github.com/devmarket/marketplace-api/internal/handlers"
	"github.com/devmarket/marketplace-api/internal/middleware"
	"github.com/devmarket/marketplace-api/internal/models"
	"github.com/devmarket/marketplace-api/internal/notify"
	"github.com/devmarket/marketplace-api/internal/repository"
	"github.com/devmarket/marketplace-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	db := database.GetDB()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	if err := database.AddIndexes(db); err != nil {
		logger.Fatal("failed to add indexes", zap.Error(err))
	}

	// Email delivery: SMTP when configured, log-only otherwise
	var sender notify.Sender
	if cfg.SMTPHost != "" {
		sender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		sender = notify.NewLogSender(logger)
	}
	dispatcher := notify.NewDispatcher(sender, logger, 4)
	defer dispatcher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Matching oracle (optional)
	var matchService *services.MatchService
	if cfg.OpenAIAPIKey != "" {
		matchService = services.NewMatchService(cfg.OpenAIAPIKey)
	}

	// Services
	auditService := services.NewAuditService(activityRepo, logger)
	authService := services.NewAuthService(userRepo)
	accountService := services.NewAccountService(userRepo, dispatcher, auditService, logger)
	projectService := services.NewProjectService(projectRepo, userRepo, matchService, dispatcher, auditService, logger)
	applicationService := services.NewApplicationService(appRepo, projectRepo, userRepo, accountService, dispatcher, auditService, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, applicationService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, projectService)
	adminHandler := handlers.NewAdminHandler(accountService, auditService)
	profileHandler := handlers.NewProfileHandler(userRepo)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		logger.Fatal("failed to create Redis store", zap.Error(err))
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Marketplace API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", middleware.RequireRole(models.RoleClient, models.RoleDeveloper, models.RoleAdmin), projectHandler.ListProjects)
			projects.POST("", middleware.RequireRole(models.RoleClient), projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireRole(models.RoleClient, models.RoleDeveloper, models.RoleAdmin), projectHandler.GetProject)
			projects.POST("/:id/cancel", middleware.RequireRole(models.RoleClient, models.RoleAdmin), projectHandler.CancelProject)
			projects.POST("/:id/complete", middleware.RequireRole(models.RoleClient, models.RoleAdmin), projectHandler.CompleteProject)
			projects.GET("/:id/applications", middleware.RequireRole(models.RoleClient, models.RoleAdmin), projectHandler.ListProjectApplications)
			projects.GET("/:id/suggestions", middleware.RequireRole(models.RoleClient, models.RoleAdmin), projectHandler.SuggestDevelopers)
		}

		// Application workflow routes (protected)
		applications := api.Group("/applications")
		applications.Use(middleware.RequireAuth())
		{
			applications.POST("", middleware.RequireRole(models.RoleDeveloper), applicationHandler.Submit)
			applications.GET("/mine", middleware.RequireRole(models.RoleDeveloper), applicationHandler.ListMine)
			applications.POST("/:id/accept", middleware.RequireRole(models.RoleClient, models.RoleAdmin), applicationHandler.Accept)
			applications.POST("/:id/reject", middleware.RequireRole(models.RoleClient, models.RoleAdmin), applicationHandler.Reject)
		}

		// Developer profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleDeveloper))
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Admin routes (protected)
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/developers/pending", adminHandler.ListPendingDevelopers)
			admin.POST("/users/:id/approve", adminHandler.ApproveAccount)
			admin.POST("/users/:id/reject", adminHandler.RejectAccount)
			admin.POST("/users/:id/flag", adminHandler.FlagAccount)
			admin.POST("/users/:id/unflag", adminHandler.UnflagAccount)
			admin.GET("/activity", adminHandler.ListActivity)
		}
	}

	// Start server
	logger.Info("server starting", zap.String("addr", ":8080"))
	if err := r.Run(":8080"); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
