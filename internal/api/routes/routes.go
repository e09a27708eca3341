package routes

import (
	"log"
	"time"

	"research-portal-backend/internal/api/handlers"
	"research-portal-backend/internal/api/middleware"
	"research-portal-backend/internal/auth"
	"research-portal-backend/internal/config"
	"research-portal-backend/internal/logger"
	"research-portal-backend/internal/repository"
	"research-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	appLogger := logger.New()

	// Initialize repositories
	departmentRepo := repository.NewDepartmentRepository(db)
	presentationRepo := repository.NewPresentationRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Initialize the mailer: without relay credentials outgoing mail is
	// logged instead of sent
	var mailer service.Mailer
	if cfg.SMTPUsername != "" && cfg.SMTPPassword != "" {
		from := cfg.MailFrom
		if from == "" {
			from = cfg.SMTPUsername
		}
		mailer = service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword,
			from, time.Duration(cfg.SMTPTimeoutSec)*time.Second)
	} else {
		log.Printf("Warning: SMTP credentials not set, schedule broadcasts will only be logged")
		mailer = service.NewConsoleMailer(appLogger)
	}

	// Initialize services
	departmentService := service.NewDepartmentService(departmentRepo, validator)
	presentationService := service.NewPresentationService(presentationRepo, departmentRepo, validator)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, validator)
	activityService := service.NewActivityLogService(activityRepo)
	analyticsService := service.NewAnalyticsService(presentationRepo)
	exportService := service.NewExportService(presentationRepo)
	reportService := service.NewReportService(presentationRepo)
	broadcastService := service.NewBroadcastService(departmentRepo, subscriptionRepo, presentationRepo, mailer, appLogger)

	// Initialize auth configuration and services
	authConfig, err := auth.LoadAuthConfig("config/auth.yaml")
	if err != nil {
		log.Printf("Warning: Failed to load auth config: %v", err)
		// Continue without auth if config fails to load
		authConfig = nil
	}

	var authHandler *auth.AuthHandler
	var authMiddleware *auth.AuthMiddleware
	if authConfig != nil {
		authService, err := auth.NewAuthService(authConfig)
		if err != nil {
			log.Printf("Warning: Failed to initialize auth service: %v", err)
		} else {
			authHandler = auth.NewAuthHandler(authService, departmentService)
			authMiddleware = auth.NewAuthMiddleware(authService)
		}
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	presentationHandler := handlers.NewPresentationHandler(presentationService)
	scheduleHandler := handlers.NewScheduleHandler(presentationService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	activityHandler := handlers.NewActivityLogHandler(activityService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	reportHandler := handlers.NewReportHandler(exportService, reportService)
	broadcastHandler := handlers.NewBroadcastHandler(broadcastService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	if authHandler != nil {
		authRoutes := router.Group("/api/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/admin/login", authHandler.AdminLogin)
			authRoutes.POST("/refresh", authHandler.Refresh)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.POST("/validate", authHandler.ValidateToken)
		}
	}

	v1 := router.Group("/api/v1")

	// Public routes: the schedule is readable and the mailing list accepts
	// signups without a session
	{
		v1.GET("/schedule/upcoming", scheduleHandler.Upcoming)
		v1.GET("/schedule/previous", scheduleHandler.Previous)
		v1.GET("/presentations/:id", presentationHandler.GetPresentation)
		v1.POST("/subscriptions", subscriptionHandler.CreateSubscription)
	}

	// Coordinator routes: booking operations bound to the department in the
	// bearer token
	coordinator := v1.Group("/presentations")
	if authMiddleware != nil {
		coordinator.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(auth.RoleCoordinator))
	}
	{
		coordinator.POST("", presentationHandler.CreatePresentation)
		coordinator.PUT("/:id", presentationHandler.UpdatePresentation)
		coordinator.DELETE("/:id", presentationHandler.DeletePresentation)
		coordinator.GET("/mine", presentationHandler.ListMyPresentations)
		coordinator.GET("/free-slots", presentationHandler.FreeSlots)
	}

	// Admin routes
	admin := v1.Group("")
	if authMiddleware != nil {
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole(auth.RoleAdmin))
	}
	{
		admin.POST("/departments", departmentHandler.CreateDepartment)
		admin.GET("/departments", departmentHandler.ListDepartments)
		admin.GET("/departments/:id", departmentHandler.GetDepartment)
		admin.PUT("/departments/:id", departmentHandler.UpdateDepartment)
		admin.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
		admin.DELETE("/subscriptions/:id", subscriptionHandler.DeleteSubscription)
		admin.GET("/activity", activityHandler.ListActivity)
		admin.GET("/analytics/summary", analyticsHandler.Summary)
		admin.GET("/reports/excel", reportHandler.ExportExcel)
		admin.GET("/reports/pdf", reportHandler.ExportPDF)
		admin.POST("/broadcast", broadcastHandler.Broadcast)
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
