package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pms-be-svc/docs"
	"pms-be-svc/internal/config"
	"pms-be-svc/internal/database"
	"pms-be-svc/internal/handler"
	"pms-be-svc/internal/middleware"
	"pms-be-svc/internal/repository"
	"pms-be-svc/internal/scheduler"
	"pms-be-svc/internal/service"
	"pms-be-svc/pkg/logger"
)

// @title PMS Backend Service API
// @version 1.0
// @description RESTful API for the property management portal: rent payment verification, maintenance complaints and reconciliation
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "PMS Backend Service API"
	docs.SwaggerInfo.Description = "RESTful API for the property management portal: rent payment verification, maintenance complaints and reconciliation"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting PMS Backend Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	tenancyRepo := repository.NewTenancyRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	complaintRepo := repository.NewComplaintRepository(db.DB)
	analyticsRepo := repository.NewAnalyticsRepository(db.DB)
	jobLogRepo := repository.NewJobLogRepository(db.DB)

	// Initialize services
	tenancyService := service.NewTenancyService(tenancyRepo, appLogger)
	paymentService := service.NewPaymentService(paymentRepo, tenancyRepo, appLogger)
	complaintService := service.NewComplaintService(complaintRepo, tenancyRepo, appLogger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, tenancyRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.ActorContext())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, tenancyService, paymentService, complaintService, analyticsService, appLogger)

	// Start the overdue payment scan scheduler
	overdueScheduler := scheduler.NewOverdueScheduler(paymentRepo, jobLogRepo, appLogger, cfg.Scheduler.OverdueScanCronExpression)
	if err := overdueScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start overdue scheduler")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	appLogger.WithField("port", cfg.Server.Port).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Stop scheduled jobs before draining requests
	overdueScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
