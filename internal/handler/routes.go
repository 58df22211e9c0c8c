package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pms-be-svc/internal/middleware"
	"pms-be-svc/internal/service"
	"pms-be-svc/pkg/logger"
)

// Routes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	tenancyService service.TenancyService,
	paymentService service.PaymentService,
	complaintService service.ComplaintService,
	analyticsService service.AnalyticsService,
	logger *logger.Logger,
) {
	// Initialize handlers
	tenancyHandler := NewTenancyHandler(tenancyService, logger)
	paymentHandler := NewPaymentHandler(paymentService, logger)
	complaintHandler := NewComplaintHandler(complaintService, logger)
	analyticsHandler := NewAnalyticsHandler(analyticsService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Tenancy routes
		buildings := v1.Group("/buildings")
		{
			buildings.GET("", tenancyHandler.ListBuildings)
			buildings.GET("/:id/reconciliation", analyticsHandler.MonthlyReconciliation)
			buildings.GET("/:id/reconciliation/export", analyticsHandler.ExportReconciliation)
		}

		apartments := v1.Group("/apartments")
		{
			apartments.GET("", tenancyHandler.ListApartments)
			apartments.GET("/:id", tenancyHandler.GetApartment)
		}

		// Payment routes
		payments := v1.Group("/payments")
		{
			payments.GET("", paymentHandler.ListPayments)
			payments.GET("/:id", paymentHandler.GetPayment)
			payments.POST("", middleware.RequireActor(), paymentHandler.SubmitPayment)
			payments.POST("/:id/verify", middleware.RequireActor(), paymentHandler.VerifyPayment)
		}

		// Complaint routes
		complaints := v1.Group("/complaints")
		{
			complaints.GET("", complaintHandler.ListComplaints)
			complaints.GET("/:id", complaintHandler.GetComplaint)
			complaints.POST("", middleware.RequireActor(), complaintHandler.CreateComplaint)
			complaints.POST("/:id/start", middleware.RequireActor(), complaintHandler.StartProgress)
			complaints.POST("/:id/resolve", middleware.RequireActor(), complaintHandler.ManagerResolve)
			complaints.POST("/:id/self-resolve", middleware.RequireActor(), complaintHandler.RenterSelfResolve)
			complaints.POST("/:id/confirm", middleware.RequireActor(), complaintHandler.RenterConfirmResolve)
			complaints.POST("/:id/escalate", middleware.RequireActor(), complaintHandler.Escalate)
			complaints.DELETE("/:id", middleware.RequireActor(), complaintHandler.DeleteComplaint)
		}

		// Analytics routes
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/risk", analyticsHandler.RiskClassification)
			analytics.GET("/behavior", analyticsHandler.PaymentBehavior)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "PMS Backend Service",
	})
}
